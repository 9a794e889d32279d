package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed migration/schema.sql
var schema string

// RunMigrations creates the tables the game store needs. It is safe to run on
// every start-up.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema.sql: %w", err)
	}
	return nil
}
