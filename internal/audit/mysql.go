package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS upload_audit (
	id           CHAR(36) PRIMARY KEY,
	dataset_id   VARCHAR(64) NULL,
	file_name    VARCHAR(255) NOT NULL,
	outcome      VARCHAR(16) NOT NULL,
	row_count    INT NOT NULL,
	column_count INT NOT NULL,
	warnings     JSON NOT NULL,
	errors       JSON NOT NULL,
	ip_address   VARCHAR(64) NULL,
	user_agent   VARCHAR(512) NULL,
	created_at   DATETIME(6) NOT NULL
)`

const mysqlInsert = `
INSERT INTO upload_audit
	(id, dataset_id, file_name, outcome, row_count, column_count, warnings, errors, ip_address, user_agent, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// MySQL writes audit entries to MySQL through database/sql.
type MySQL struct {
	db *sql.DB
}

// OpenMySQL opens and pings a MySQL database.
// The DSN should include parseTime=true.
func OpenMySQL(ctx context.Context, dsn string, maxConns int, maxLifetime time.Duration) (*MySQL, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(maxConns)
	db.SetConnMaxLifetime(maxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return &MySQL{db: db}, nil
}

// EnsureSchema creates the audit table if it does not exist.
func (m *MySQL) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, mysqlSchema); err != nil {
		return fmt.Errorf("create upload_audit: %w", err)
	}
	return nil
}

// Record implements Recorder.
func (m *MySQL) Record(ctx context.Context, e Entry) error {
	warnings, err := json.Marshal(nonNil(e.Warnings))
	if err != nil {
		return err
	}
	errs, err := json.Marshal(nonNil(e.Errors))
	if err != nil {
		return err
	}

	_, err = m.db.ExecContext(ctx, mysqlInsert,
		e.ID.String(),
		nullString(e.DatasetID),
		e.FileName,
		string(e.Outcome),
		e.Rows,
		e.Columns,
		warnings,
		errs,
		nullString(e.IPAddress),
		nullString(e.UserAgent),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert upload_audit: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (m *MySQL) Close() error {
	return m.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
