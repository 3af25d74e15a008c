// Package sqlite serves the storage contract from a SQLite file.
//
// Two drivers are registered: "sqlite" (modernc.org/sqlite, pure Go) and
// "sqlite3" (github.com/mattn/go-sqlite3, needs cgo).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hrutik5321/rowdeck/internal/db"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// SqliteDB implements db.Service on database/sql.
type SqliteDB struct {
	sqlDB *sql.DB
	log   zerolog.Logger
}

// Open opens the file at path with the named driver and pings it.
func Open(driver, path string, log zerolog.Logger) (*SqliteDB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn, err := buildDSN(driver, filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	log.Info().Str("driver", driver).Str("path", path).Msg("opened sqlite database")
	return &SqliteDB{sqlDB: sqlDB, log: log}, nil
}

func buildDSN(driver, path string) (string, error) {
	switch driver {
	case DriverModernc:
		return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", nil
	case DriverMattn:
		return "file:" + path + "?_busy_timeout=5000&_foreign_keys=on", nil
	default:
		return "", fmt.Errorf("unknown sqlite driver %q", driver)
	}
}

// Close does safe close of all the connections
func (s *SqliteDB) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Initialize creates the table if needed and reports whether it is present.
func (s *SqliteDB) Initialize(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, db.ErrNotConnected
	}

	_, err := s.sqlDB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+db.Table+` (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return false, fmt.Errorf("create table: %w", err)
	}

	var count int
	err = s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
		db.Table,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table: %w", err)
	}

	return count == 1, nil
}

// Execute implements db.Service.
func (s *SqliteDB) Execute(ctx context.Context, query string, params ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return db.ErrNotConnected
	}

	if _, err := s.sqlDB.ExecContext(ctx, query, params...); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

// ExecuteWithRows implements db.Service.
func (s *SqliteDB) ExecuteWithRows(ctx context.Context, query string, params ...any) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, db.ErrNotConnected
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var result [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		scanArgs := make([]any, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		result = append(result, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}
