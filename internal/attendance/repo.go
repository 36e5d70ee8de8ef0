package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const recordColumns = `id, student_name, sign_in, sign_out, total_hours, status, notes, is_regularized`

func scanRecord(row interface{ Scan(...any) error }) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.StudentName, &rec.SignIn, &rec.SignOut,
		&rec.TotalHours, &rec.Status, &rec.Notes, &rec.IsRegularized)
	return rec, err
}

// Create inserts a record and returns the store-assigned id.
func (r *Repository) Create(ctx context.Context, rec Record) (int64, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (student_name, sign_in, status, notes, is_regularized)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rec.StudentName, rec.SignIn, rec.Status, rec.Notes, rec.IsRegularized)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns a single record by id.
func (r *Repository) Get(ctx context.Context, id int64) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM attendance_records WHERE id = $1
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// CompleteSignOut writes the sign-out time, total hours and terminal status.
func (r *Repository) CompleteSignOut(ctx context.Context, id int64, signOut time.Time, totalHours, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE attendance_records
		SET sign_out = $2, total_hours = $3, status = $4
		WHERE id = $1
	`, id, signOut, totalHours, status)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// UpdateResolution sets the professor's decision. Notes are rewritten only
// when a new value is supplied (approval prefixes them, rejection keeps them).
func (r *Repository) UpdateResolution(ctx context.Context, id int64, status string, notes *string) error {
	var (
		res sql.Result
		err error
	)
	if notes != nil {
		res, err = r.db.ExecContext(ctx, `
			UPDATE attendance_records SET status = $2, notes = $3 WHERE id = $1
		`, id, status, *notes)
	} else {
		res, err = r.db.ExecContext(ctx, `
			UPDATE attendance_records SET status = $2 WHERE id = $1
		`, id, status)
	}
	if err != nil {
		return err
	}
	return oneRow(res)
}

// ListByStatus returns all records with the given status, oldest first.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]Record, error) {
	return r.list(ctx, `
		SELECT `+recordColumns+` FROM attendance_records WHERE status = $1 ORDER BY id
	`, status)
}

// ListAll returns every record in id order. The month summary relies on
// this ordering so that the newest record for a date wins.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	return r.list(ctx, `
		SELECT `+recordColumns+` FROM attendance_records ORDER BY id
	`)
}

// ListRecent returns up to limit records ordered by sign_in descending.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.list(ctx, `
		SELECT `+recordColumns+` FROM attendance_records ORDER BY sign_in DESC LIMIT $1
	`, limit)
}

// CountByStatus returns the number of records with the given status.
func (r *Repository) CountByStatus(ctx context.Context, status string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendance_records WHERE status = $1
	`, status)
	var n int
	err := row.Scan(&n)
	return n, err
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
