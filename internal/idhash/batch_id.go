// Package idhash derives deterministic identifiers from record content.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"payroll-gini/internal/domain"
)

// batchNamespace scopes content-derived batch ids.
var batchNamespace = uuid.MustParse("3b0c1e52-6f0a-4d8e-a6a4-9c1f55d2b7e1")

// ComputeRecordsDigest computes SHA256 over records in input order.
// Formula: SHA256(season|payroll|win_pct\n ...), win_pct in shortest
// round-trip form. Returns hex-encoded hash (64 characters).
func ComputeRecordsDigest(records []domain.TeamSeasonRecord) string {
	h := sha256.New()
	for _, r := range records {
		fmt.Fprintf(h, "%d|%d|%s\n", r.Season, r.Payroll, strconv.FormatFloat(r.WinPct, 'g', -1, 64))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ComputeBatchID returns a name-based (v5) UUID of the records digest.
// Identical inputs map to the same batch id.
func ComputeBatchID(records []domain.TeamSeasonRecord) uuid.UUID {
	return uuid.NewSHA1(batchNamespace, []byte(ComputeRecordsDigest(records)))
}
