package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
)

const (
	defaultMaxConns = 25
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

//go:embed migrations/*.sql
var migrations embed.FS

// Config captures the settings for the Postgres connection pool.
type Config struct {
	DSN      string
	MaxConns int
}

// Connect opens a pooled database/sql handle over pgx and verifies it with a
// ping.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Migrate applies every pending embedded migration.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Pinger adapts a database handle to the readiness probe.
type Pinger struct {
	db *sql.DB
}

func NewPinger(db *sql.DB) Pinger { return Pinger{db: db} }

func (p Pinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
