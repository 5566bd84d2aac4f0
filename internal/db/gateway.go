package db

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/devjobs/internal/config"
	"github.com/geocoder89/devjobs/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const defaultQueryTimeout = 3 * time.Second

// Querier is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Gateway is the single entry point to the store. Every statement runs
// through Do, which bounds it with the query timeout, records metrics under a
// logical op name and normalises the error.
type Gateway struct {
	q       Querier
	timeout time.Duration
	prom    *observability.Prom
}

func NewGateway(q Querier, timeout time.Duration, prom *observability.Prom) *Gateway {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	return &Gateway{
		q:       q,
		timeout: timeout,
		prom:    prom,
	}
}

// Do runs fn against the store. pgx.ErrNoRows is returned as is so callers can
// map it to their own not-found error; every other failure comes back as a
// *QueryError.
func (g *Gateway) Do(ctx context.Context, op string, fn func(ctx context.Context, q Querier) error) error {
	cctx, cancel := config.WithTimeout(ctx, g.timeout)
	defer cancel()

	noRows := false

	err := g.prom.ObserveDB(op, func() error {
		err := fn(cctx, g.q)
		if errors.Is(err, pgx.ErrNoRows) {
			noRows = true
			return nil
		}
		return err
	})

	if noRows {
		return pgx.ErrNoRows
	}

	if err == nil {
		return nil
	}

	return &QueryError{
		Op:      op,
		Err:     err,
		Timeout: errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded),
	}
}

// Ping checks the store is reachable; used by readiness.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.Do(ctx, "ping", func(ctx context.Context, q Querier) error {
		var one int
		return q.QueryRow(ctx, `SELECT 1`).Scan(&one)
	})
}
