package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/skobkin/signalbars/internal/domain"
)

func TestClearStateHistory_RemovesAllStates(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewStateRepo(db)

	for level := 0; level < 3; level++ {
		if _, err := repo.Insert(ctx, domain.IndicatorState{
			Level:      level,
			BarCount:   5,
			Connected:  true,
			Source:     domain.StateSourceGUI,
			RecordedAt: time.Now(),
		}); err != nil {
			t.Fatalf("seed state: %v", err)
		}
	}

	removed, err := ClearStateHistory(ctx, db)
	if err != nil {
		t.Fatalf("clear state history: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed rows, got %d", removed)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM indicator_states;").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected indicator_states to be empty after clear, got %d rows", count)
	}
}

func TestClearStateHistory_NilDB(t *testing.T) {
	if _, err := ClearStateHistory(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil database")
	}
}
