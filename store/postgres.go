package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// Postgres keeps calculation history in a PostgreSQL table.
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

// OpenPostgres connects with the given DSN and ensures the history table
// exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenPostgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenPostgres: ping: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS tvm_calculations (
		id         BIGSERIAL PRIMARY KEY,
		tool       TEXT NOT NULL,
		input      TEXT NOT NULL,
		result     DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenPostgres: create table: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Save inserts one record, stamping CreatedAt if unset.
func (p *Postgres) Save(ctx context.Context, rec Record) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO tvm_calculations (tool, input, result, created_at) VALUES ($1, $2, $3, $4)`,
		rec.Tool, rec.Input, rec.Result, created)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (p *Postgres) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT tool, input, result, created_at FROM tvm_calculations ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("Recent: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Tool, &rec.Input, &rec.Result, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("Recent: scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Recent: %w", err)
	}
	return recs, nil
}
