// Package schema answers questions about the live database catalog so queries
// can adapt to tables and columns that may be missing or misnamed.
package schema

import (
	"context"

	"github.com/geocoder89/devjobs/internal/db"
	"github.com/geocoder89/devjobs/internal/observability"
)

// Probe reads information_schema for the connection's current schema. It
// never infers existence from a failed query.
type Probe struct {
	gw   *db.Gateway
	prom *observability.Prom
}

func NewProbe(gw *db.Gateway, prom *observability.Prom) *Probe {
	return &Probe{gw: gw, prom: prom}
}

func (p *Probe) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool

	err := p.gw.Do(ctx, "schema.table_exists", func(ctx context.Context, q db.Querier) error {
		return q.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1
				FROM information_schema.tables
				WHERE table_schema = current_schema() AND table_name = $1
			)`,
			table,
		).Scan(&exists)
	})

	p.prom.ObserveProbe("table:"+table, exists, err)

	return exists, err
}

func (p *Probe) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	var exists bool

	err := p.gw.Do(ctx, "schema.column_exists", func(ctx context.Context, q db.Querier) error {
		return q.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
			)`,
			table, column,
		).Scan(&exists)
	})

	p.prom.ObserveProbe("column:"+table+"."+column, exists, err)

	return exists, err
}
