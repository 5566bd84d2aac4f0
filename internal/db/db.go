package db

import (
	"context"
	"time"

	"github.com/geocoder89/devjobs/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens the pool backing the Gateway. Callers own it and must Close it
// on shutdown.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL())

	if err != nil {
		return nil, err
	}

	pcfg.MaxConns = 5
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)

	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)

	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)

	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
