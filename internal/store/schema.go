package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is applied on startup. Timestamps are TIMESTAMP (no zone): the
// service captures wall-clock time in a fixed civil zone and strips the
// offset before writing.
const Schema = `
CREATE TABLE IF NOT EXISTS attendance_records (
    id SERIAL PRIMARY KEY,
    student_name TEXT NOT NULL DEFAULT 'Guest Student',
    sign_in TIMESTAMP NOT NULL,
    sign_out TIMESTAMP,
    total_hours TEXT,
    status TEXT NOT NULL DEFAULT 'In-Progress',
    notes TEXT,
    is_regularized BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_attendance_records_sign_in ON attendance_records (sign_in DESC);
CREATE INDEX IF NOT EXISTS idx_attendance_records_status ON attendance_records (status);
`

// Migrate creates the attendance table and indexes if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
