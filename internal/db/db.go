package db

import (
	"context"
	"errors"
)

// Connection parameters for any SQL DB.
type ConnConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// Table is the single table every backend bootstraps and serves.
const Table = "test_table"

var ErrNotConnected = errors.New("database not connected")

// Service executes SQL statements against the backing store.
//
// Statements use "?" placeholders; backends that need another bind syntax
// rewrite them. ExecuteWithRows returns positional tuples in column order and
// a nil slice when the statement produced no rows.
type Service interface {
	Initialize(ctx context.Context) (bool, error)
	Execute(ctx context.Context, query string, params ...any) error
	ExecuteWithRows(ctx context.Context, query string, params ...any) ([][]any, error)
	Close() error
}
