package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS upload_audit (
	id          UUID PRIMARY KEY,
	dataset_id  TEXT,
	file_name   TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	row_count   INTEGER NOT NULL,
	column_count INTEGER NOT NULL,
	warnings    TEXT[] NOT NULL DEFAULT '{}',
	errors      TEXT[] NOT NULL DEFAULT '{}',
	ip_address  TEXT,
	user_agent  TEXT,
	created_at  TIMESTAMPTZ NOT NULL
)`

const postgresInsert = `
INSERT INTO upload_audit
	(id, dataset_id, file_name, outcome, row_count, column_count, warnings, errors, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Postgres writes audit entries to PostgreSQL through a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an open pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the audit table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create upload_audit: %w", err)
	}
	return nil
}

// Record implements Recorder.
func (p *Postgres) Record(ctx context.Context, e Entry) error {
	_, err := p.pool.Exec(ctx, postgresInsert,
		pgtype.UUID{Bytes: e.ID, Valid: true},
		toPgText(e.DatasetID),
		e.FileName,
		string(e.Outcome),
		e.Rows,
		e.Columns,
		nonNil(e.Warnings),
		nonNil(e.Errors),
		toPgText(e.IPAddress),
		toPgText(e.UserAgent),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert upload_audit: %w", err)
	}
	return nil
}

// toPgText stores empty strings as NULL.
func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
