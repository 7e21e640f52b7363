package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var errNilDatabase = errors.New("database is not initialized")

// ClearStateHistory drops every stored indicator state and returns how many rows went away.
func ClearStateHistory(ctx context.Context, db *sql.DB) (int64, error) {
	if db == nil {
		return 0, errNilDatabase
	}

	//goland:noinspection SqlWithoutWhere
	res, err := db.ExecContext(ctx, `DELETE FROM indicator_states;`)
	if err != nil {
		return 0, fmt.Errorf("clear indicator states: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared indicator states: %w", err)
	}

	return removed, nil
}
