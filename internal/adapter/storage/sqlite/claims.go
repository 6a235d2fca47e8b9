// Package sqlite provides the durable claim ledger. Claims survive process
// restarts, so a crash between dispatch and delivery cannot cause a second
// fulfillment of the same job after the worker comes back.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"

	"github.com/soundforge/seller/internal/port"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ port.ClaimStore = (*ClaimStore)(nil)

type ClaimStore struct {
	db *sql.DB
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

func NewClaimStore(dataDir string) (*ClaimStore, error) {
	registerHook()

	dbPath := filepath.Join(dataDir, "seller.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for SQLite (WAL allows concurrent reads but only one writer)
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &ClaimStore{db: db}, nil
}

func (s *ClaimStore) Close() error {
	return s.db.Close()
}

// TryClaim inserts jobID if absent. The primary-key constraint makes the
// test-and-insert atomic; a conflicting insert means the job was already
// claimed, by this process or a previous one.
func (s *ClaimStore) TryClaim(jobID string) (bool, error) {
	res, err := s.db.Exec(
		`INSERT INTO claims (job_id, claimed_at) VALUES (?, CURRENT_TIMESTAMP)
		 ON CONFLICT (job_id) DO NOTHING`,
		jobID,
	)
	if err != nil {
		return false, fmt.Errorf("insert claim: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows == 1, nil
}
