package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrutik5321/rowdeck/internal/db"
	"github.com/hrutik5321/rowdeck/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

const pingTimeout = 10 * time.Second

type PostgresDB struct {
	cfg  db.ConnConfig
	dsn  string
	log  zerolog.Logger
	pool *pgxpool.Pool
}

func New(cfg db.ConnConfig, log zerolog.Logger) *PostgresDB {
	return &PostgresDB{cfg: cfg, log: log}
}

// NewFromDSN skips DSN assembly; used when a full connection string is at hand.
func NewFromDSN(dsn string, log zerolog.Logger) *PostgresDB {
	return &PostgresDB{dsn: dsn, log: log}
}

func (p *PostgresDB) buildDSN(cfg db.ConnConfig) string {
	if p.dsn != "" {
		return p.dsn
	}

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		net.JoinHostPort(cfg.Host, cfg.Port),
		cfg.Database,
		sslMode,
	)
}

// Connect opens the pool and pings it. Debug and trace levels also log
// every statement through pgx's tracer.
func (p *PostgresDB) Connect(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(p.buildDSN(p.cfg))
	if err != nil {
		return fmt.Errorf("parse pool config: %w", err)
	}

	if level := p.log.GetLevel(); level <= zerolog.DebugLevel {
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(logger.NewPgxLogger(p.log)),
			LogLevel: logger.PgxTraceLogLevel(level),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("ping: %w", err)
	}

	p.pool = pool
	p.log.Info().Str("host", p.cfg.Host).Msg("connected to postgres")
	return nil
}

// Close db
func (p *PostgresDB) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// Initialize connects on first use and makes sure the table exists.
func (p *PostgresDB) Initialize(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if p.pool == nil {
		if err := p.Connect(ctx); err != nil {
			return false, err
		}
	}

	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+db.Table+` (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return false, fmt.Errorf("create table: %w", err)
	}

	var exists bool
	err = p.pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, db.Table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check table: %w", err)
	}

	return exists, nil
}

// Execute implements db.Service.
func (p *PostgresDB) Execute(ctx context.Context, query string, params ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.pool == nil {
		return db.ErrNotConnected
	}

	if _, err := p.pool.Exec(ctx, bind(query, params), params...); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

// ExecuteWithRows implements db.Service.
func (p *PostgresDB) ExecuteWithRows(ctx context.Context, query string, params ...any) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.pool == nil {
		return nil, db.ErrNotConnected
	}

	rows, err := p.pool.Query(ctx, bind(query, params), params...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var data [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		data = append(data, values)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate rows: %w", rows.Err())
	}

	return data, nil
}

// normalize turns uuid-shaped values into their canonical string so that
// raw query output is readable. Everything else passes through.
func normalize(v any) any {
	switch val := v.(type) {

	// UUID as [16]byte
	case [16]byte:
		if uid, err := uuid.FromBytes(val[:]); err == nil {
			return uid.String()
		}
		return fmt.Sprint(val)

	// pgx UUID type
	case pgtype.UUID:
		if val.Valid {
			return uuid.UUID(val.Bytes).String()
		}
		return nil

	default:
		return v
	}
}

// bind rebinds placeholders only when there are params, so raw SQL keeps
// operators like jsonb's "?".
func bind(query string, params []any) string {
	if len(params) == 0 {
		return query
	}
	return rebind(query)
}

// rebind rewrites "?" placeholders into "$1", "$2", ... leaving quoted
// literals and identifiers untouched.
func rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var (
		sb    strings.Builder
		n     int
		quote rune
	)
	sb.Grow(len(query) + 8)

	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '?':
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
