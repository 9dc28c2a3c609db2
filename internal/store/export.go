package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"jobview-engine/internal/domain"
)

// Export replaces the jobs table with the records of c inside a single
// transaction and logs the run in the exports table.
func Export(ctx context.Context, db *sql.DB, c *domain.Collection) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs;`); err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs (row_index, title, company, location, description, salary, salary_min, salary_max, salary_avg, date_posted, apply_link)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := 0; i < c.Len(); i++ {
		r := c.At(i)
		if _, err := stmt.ExecContext(ctx,
			i, r.Title, r.Company, r.Location, r.Description, r.SalaryDisplay,
			nullFloat(r.SalaryMin), nullFloat(r.SalaryMax), r.SalaryAvg, r.DatePosted, r.ApplyLink,
		); err != nil {
			return 0, fmt.Errorf("insert job %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO exports (source, schema, rows, exported_at) VALUES (?, ?, ?, ?);`,
		c.Source(), c.Schema().String(), c.Len(), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return 0, fmt.Errorf("record export: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return c.Len(), nil
}

// ExportFile opens (or creates) the SQLite file at path and exports c into
// it. A sibling .lock file keeps two exports from interleaving.
func ExportFile(ctx context.Context, path string, c *domain.Collection) (int, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return 0, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return 0, fmt.Errorf("lock %s: another export is running", path)
	}
	defer func() { _ = lock.Unlock() }()

	d, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer d.Close()

	if err := Migrate(d.Pool); err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}
	return Export(ctx, d.Pool, c)
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
