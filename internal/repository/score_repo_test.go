package repository

import (
	"path/filepath"
	"testing"

	"avshort/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_scores.db")

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestRecordScoreMonotonic(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)
	groups := NewGroupRepository(db)
	scores := NewScoreRepository(db)

	group, err := groups.CreateGroup("Radio Calls")
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	if best, err := scores.GetBestScore(group.ID); err != nil {
		t.Fatalf("GetBestScore returned error: %v", err)
	} else if best != nil {
		t.Fatalf("expected no best score before any session, got %d", *best)
	}

	steps := []struct {
		record int
		want   int
	}{
		{80, 80}, // first score is recorded
		{60, 80}, // lower score never regresses the best
		{80, 80}, // equal score leaves the record untouched
		{90, 90}, // strictly greater overwrites
	}

	for _, step := range steps {
		if err := scores.RecordScore(group.ID, step.record); err != nil {
			t.Fatalf("RecordScore(%d) returned error: %v", step.record, err)
		}
		best, err := scores.GetBestScore(group.ID)
		if err != nil {
			t.Fatalf("GetBestScore returned error: %v", err)
		}
		if best == nil {
			t.Fatalf("after RecordScore(%d): best score missing", step.record)
		}
		if *best != step.want {
			t.Errorf("after RecordScore(%d): best = %d, want %d", step.record, *best, step.want)
		}
	}
}

func TestRecordScoreRejectsOutOfRange(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)
	scores := NewScoreRepository(db)

	for _, score := range []int{-1, 101} {
		if err := scores.RecordScore(1, score); err == nil {
			t.Errorf("RecordScore(%d) succeeded, want out-of-range error", score)
		}
	}
}
