// Package database provides PostgreSQL connection management using pgx
// and applies the embedded schema migrations.
package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	connectAttempts = 5
	retryDelay      = 2 * time.Second
)

// NewPool creates and validates a pgxpool connection pool.
// It retries a few times to accommodate containers starting up.
func NewPool(ctx context.Context, cfg config.PostgresConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		log.WarnContext(ctx, "db connect attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", connectAttempts),
			slog.Any("error", err),
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to postgres: %w", ctx.Err())
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("connect to postgres: %w", err)
}

// Migrate applies every pending migration through the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	log.InfoContext(ctx, "migrations applied successfully")
	return nil
}
