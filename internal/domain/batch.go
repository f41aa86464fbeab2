package domain

import (
	"time"

	"github.com/google/uuid"
)

// Batch identifies one ingested input file.
// Records of a batch are immutable once stored.
type Batch struct {
	ID        uuid.UUID
	Source    string    // input file name or label
	Records   int       // number of team-season records
	CreatedAt time.Time // set by the store
}
