package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// WithinTx runs fn inside a single transaction. The transaction is
// committed when fn returns nil and rolled back otherwise, so callers
// never see a partially applied unit of work.
func WithinTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
