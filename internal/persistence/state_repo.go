package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/skobkin/signalbars/internal/domain"
)

type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

func (r *StateRepo) Insert(ctx context.Context, s domain.IndicatorState) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO indicator_states(level, bar_count, connected, source, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.Level, s.BarCount, boolToInt(s.Connected), string(s.Source), encodeRecordedAt(s.RecordedAt))
	if err != nil {
		return 0, fmt.Errorf("insert indicator state: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("indicator state id: %w", err)
	}

	return id, nil
}

func (r *StateRepo) Latest(ctx context.Context) (domain.IndicatorState, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT level, bar_count, connected, source, recorded_at
		FROM indicator_states
		ORDER BY id DESC
		LIMIT 1
	`)
	s, err := scanState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.IndicatorState{}, false, nil
	}
	if err != nil {
		return domain.IndicatorState{}, false, fmt.Errorf("latest indicator state: %w", err)
	}

	return s, true, nil
}

// ListRecent returns up to limit states, newest first.
func (r *StateRepo) ListRecent(ctx context.Context, limit int) ([]domain.IndicatorState, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT level, bar_count, connected, source, recorded_at
		FROM indicator_states
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list indicator states: %w", err)
	}
	defer rows.Close()

	out := make([]domain.IndicatorState, 0, limit)
	for rows.Next() {
		s, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("scan indicator state: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate indicator states: %w", err)
	}

	return out, nil
}

// Prune deletes everything but the newest keep rows.
func (r *StateRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM indicator_states
		WHERE id NOT IN (
			SELECT id FROM indicator_states ORDER BY id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune indicator states: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruned indicator states count: %w", err)
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanState(row rowScanner) (domain.IndicatorState, error) {
	var (
		s          domain.IndicatorState
		connected  int64
		source     string
		recordedMs int64
	)
	if err := row.Scan(&s.Level, &s.BarCount, &connected, &source, &recordedMs); err != nil {
		return domain.IndicatorState{}, err
	}
	s.Connected = connected != 0
	s.Source = domain.StateSource(source)
	s.RecordedAt = decodeRecordedAt(recordedMs)

	return s, nil
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}

	return 0
}

// recorded_at is stored as unix milliseconds; 0 means unset.
func encodeRecordedAt(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixMilli()
}

func decodeRecordedAt(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}
