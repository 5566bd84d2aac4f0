package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/geocoder89/devjobs/internal/cache"
	"github.com/geocoder89/devjobs/internal/db"
)

const (
	UserTable = "user"

	// AdsTable wins whenever it exists. LegacyAdsTable is the historical
	// misspelling still found in some databases.
	AdsTable       = "advertisement"
	LegacyAdsTable = "adverdissement"

	ColumnRole   = "role"
	ColumnActive = "active"
)

const (
	keyAdsTable    = "tables:ads"
	keyUserColumns = "columns:user"
)

type Catalog interface {
	TableExists(ctx context.Context, table string) (bool, error)
	ColumnExists(ctx context.Context, table, column string) (bool, error)
}

// UserColumns reports which optional columns of the user table exist.
type UserColumns struct {
	Role   bool `json:"role"`
	Active bool `json:"active"`
}

type Snapshot struct {
	AdsTable    string      `json:"adsTable"`
	UserColumns UserColumns `json:"userColumns"`
}

// Resolver caches catalog answers for ttl so requests do not pay a metadata
// round-trip each time. Probe failures are never cached.
type Resolver struct {
	catalog Catalog
	tables  *cache.Cache[string]
	columns *cache.Cache[UserColumns]
}

func NewResolver(catalog Catalog, ttl time.Duration) *Resolver {
	return &Resolver{
		catalog: catalog,
		tables:  cache.New[string](ttl),
		columns: cache.New[UserColumns](ttl),
	}
}

// AdsTable returns the advertisement table to query.
func (r *Resolver) AdsTable(ctx context.Context) (string, error) {
	return r.tables.GetOrLoad(ctx, keyAdsTable, r.resolveAdsTable)
}

func (r *Resolver) resolveAdsTable(ctx context.Context) (string, error) {
	for _, candidate := range []string{AdsTable, LegacyAdsTable} {
		ok, err := r.catalog.TableExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}

	return "", &db.QueryError{
		Op:  "schema.ads_table",
		Err: fmt.Errorf("%w: neither %q nor %q exists", db.ErrTableMissing, AdsTable, LegacyAdsTable),
	}
}

func (r *Resolver) UserColumns(ctx context.Context) (UserColumns, error) {
	return r.columns.GetOrLoad(ctx, keyUserColumns, func(ctx context.Context) (UserColumns, error) {
		var cols UserColumns

		hasRole, err := r.catalog.ColumnExists(ctx, UserTable, ColumnRole)
		if err != nil {
			return UserColumns{}, err
		}

		hasActive, err := r.catalog.ColumnExists(ctx, UserTable, ColumnActive)
		if err != nil {
			return UserColumns{}, err
		}

		cols.Role = hasRole
		cols.Active = hasActive

		return cols, nil
	})
}

// Snapshot resolves everything the handlers depend on.
func (r *Resolver) Snapshot(ctx context.Context) (Snapshot, error) {
	table, err := r.AdsTable(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	cols, err := r.UserColumns(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{AdsTable: table, UserColumns: cols}, nil
}

// Invalidate drops cached answers; the next lookup re-probes the catalog.
func (r *Resolver) Invalidate() {
	r.tables.Clear()
	r.columns.Clear()
}
