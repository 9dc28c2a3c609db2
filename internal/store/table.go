package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Job is a row of the exported jobs table.
type Job struct {
	ID            int64    `json:"id"`
	RowIndex      int      `json:"rowIndex"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	SalaryDisplay string   `json:"salary"`
	SalaryMin     *float64 `json:"salaryMin"`
	SalaryMax     *float64 `json:"salaryMax"`
	SalaryAvg     float64  `json:"salaryAvg"`
	DatePosted    string   `json:"datePosted"`
	ApplyLink     string   `json:"applyLink"`
}

func Migrate(db *sql.DB) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  row_index INTEGER NOT NULL,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  salary_min REAL,
  salary_max REAL,
  salary_avg REAL NOT NULL DEFAULT 0,
  date_posted TEXT NOT NULL DEFAULT '',
  apply_link TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS exports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  schema TEXT NOT NULL,
  rows INTEGER NOT NULL,
  exported_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_company
ON jobs(company);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_location
ON jobs(location);
`); err != nil {
		return err
	}

	// Mark schema v1
	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func CountJobs(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// ListJobs returns exported rows in source order.
func ListJobs(ctx context.Context, db *sql.DB, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, row_index, title, company, location, description, salary,
       salary_min, salary_max, salary_avg, date_posted, apply_link
FROM jobs
ORDER BY row_index ASC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		var lo, hi sql.NullFloat64
		if err := rows.Scan(
			&j.ID,
			&j.RowIndex,
			&j.Title,
			&j.Company,
			&j.Location,
			&j.Description,
			&j.SalaryDisplay,
			&lo,
			&hi,
			&j.SalaryAvg,
			&j.DatePosted,
			&j.ApplyLink,
		); err != nil {
			return nil, err
		}
		if lo.Valid {
			j.SalaryMin = &lo.Float64
		}
		if hi.Valid {
			j.SalaryMax = &hi.Float64
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
