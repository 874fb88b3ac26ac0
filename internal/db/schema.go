// internal/db/schema.go
package db

import (
	"database/sql"
	"fmt"
)

// Schema sync is non-destructive: existing tables and their rows are
// left untouched.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id SERIAL PRIMARY KEY,
		firstname TEXT NOT NULL,
		lastname TEXT NOT NULL,
		age INTEGER,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS audit_events (
		id SERIAL PRIMARY KEY,
		customer_id INTEGER NOT NULL DEFAULT 0,
		action TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Sync creates any missing tables.
func Sync(conn *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
