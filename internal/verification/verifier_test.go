package verification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"payroll-gini/internal/domain"
	"payroll-gini/internal/storage"
	"payroll-gini/internal/storage/memory"
)

func testRecords() []domain.TeamSeasonRecord {
	return []domain.TeamSeasonRecord{
		{Season: 2000, Payroll: 92538260, WinPct: 87.0 / 161.0},
		{Season: 2000, Payroll: 24130000, WinPct: 0.5},
		{Season: 2001, Payroll: 112287143, WinPct: 0.59375},
	}
}

func TestCompareRecords_ExactMatch(t *testing.T) {
	if d := CompareRecords(testRecords(), testRecords()); len(d) != 0 {
		t.Errorf("Expected no divergences, got %+v", d)
	}
}

func TestCompareRecords_WithinTolerance(t *testing.T) {
	actual := testRecords()
	actual[0].WinPct += FloatTolerance / 2

	if d := CompareRecords(testRecords(), actual); len(d) != 0 {
		t.Errorf("Expected no divergences within tolerance, got %+v", d)
	}
}

func TestCompareRecords_Divergences(t *testing.T) {
	actual := testRecords()
	actual[1].Payroll = 1
	actual[2].Season = 2002
	actual[2].WinPct = 0.6

	d := CompareRecords(testRecords(), actual)
	if len(d) != 3 {
		t.Fatalf("Expected 3 divergences, got %d: %+v", len(d), d)
	}

	if d[0].Row != 1 || d[0].Field != "Payroll" || d[0].Expected != int64(24130000) || d[0].Actual != int64(1) {
		t.Errorf("Unexpected payroll divergence: %+v", d[0])
	}
	if d[1].Row != 2 || d[1].Field != "Season" {
		t.Errorf("Unexpected season divergence: %+v", d[1])
	}
	if d[2].Row != 2 || d[2].Field != "WinPct" {
		t.Errorf("Unexpected win pct divergence: %+v", d[2])
	}
}

func TestVerifyBatch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTeamSeasonStore()
	id := uuid.New()

	if err := store.InsertBatch(ctx, domain.Batch{ID: id}, testRecords()); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	report, err := VerifyBatch(ctx, store, id, testRecords())
	if err != nil {
		t.Fatalf("VerifyBatch failed: %v", err)
	}
	if !report.Match() {
		t.Errorf("Expected match, got %+v", report)
	}

	// Source with an extra record does not match.
	longer := append(testRecords(), domain.TeamSeasonRecord{Season: 2002, Payroll: 1, WinPct: 0.5})
	report, err = VerifyBatch(ctx, store, id, longer)
	if err != nil {
		t.Fatalf("VerifyBatch failed: %v", err)
	}
	if report.Match() {
		t.Error("Expected mismatch for differing record count")
	}
	if report.Expected != 4 || report.Stored != 3 {
		t.Errorf("Unexpected counts: expected=%d stored=%d", report.Expected, report.Stored)
	}
}

func TestVerifyBatch_NotFound(t *testing.T) {
	_, err := VerifyBatch(context.Background(), memory.NewTeamSeasonStore(), uuid.New(), testRecords())
	if err == nil {
		t.Fatal("Expected error for unknown batch")
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
