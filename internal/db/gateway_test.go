package db

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scanFn(dest...) }

type fakeQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (f *fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("SELECT 0"), nil
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.queryRowFn(ctx, sql, args...)
}

func TestGatewayDo_Success(t *testing.T) {
	c := qt.New(t)

	g := NewGateway(&fakeQuerier{}, time.Second, nil)

	err := g.Do(context.Background(), "noop", func(ctx context.Context, q Querier) error {
		_, deadlineSet := ctx.Deadline()
		c.Check(deadlineSet, qt.IsTrue)
		return nil
	})

	c.Assert(err, qt.IsNil)
}

func TestGatewayDo_NoRowsPassesThrough(t *testing.T) {
	c := qt.New(t)

	g := NewGateway(&fakeQuerier{}, time.Second, nil)

	err := g.Do(context.Background(), "users.get_by_id", func(ctx context.Context, q Querier) error {
		return pgx.ErrNoRows
	})

	c.Assert(err, qt.Equals, pgx.ErrNoRows)
	c.Assert(OpOf(err), qt.Equals, "")
}

func TestGatewayDo_WrapsStoreErrors(t *testing.T) {
	c := qt.New(t)

	g := NewGateway(&fakeQuerier{}, time.Second, nil)
	pgErr := &pgconn.PgError{Code: "42P01", Message: `relation "advertisement" does not exist`}

	err := g.Do(context.Background(), "ads.search", func(ctx context.Context, q Querier) error {
		return pgErr
	})

	var qe *QueryError
	c.Assert(errors.As(err, &qe), qt.IsTrue)
	c.Assert(qe.Op, qt.Equals, "ads.search")
	c.Assert(err.Error(), qt.Contains, "does not exist")
	c.Assert(errors.Is(err, ErrQueryTimeout), qt.IsFalse)

	var got *pgconn.PgError
	c.Assert(errors.As(err, &got), qt.IsTrue)
	c.Assert(got.Code, qt.Equals, "42P01")
}

func TestGatewayDo_TimeoutIsDistinct(t *testing.T) {
	c := qt.New(t)

	g := NewGateway(&fakeQuerier{}, 10*time.Millisecond, nil)

	err := g.Do(context.Background(), "users.list", func(ctx context.Context, q Querier) error {
		<-ctx.Done()
		return ctx.Err()
	})

	c.Assert(errors.Is(err, ErrQueryTimeout), qt.IsTrue)
	c.Assert(OpOf(err), qt.Equals, "users.list")
}

func TestGatewayPing(t *testing.T) {
	c := qt.New(t)

	q := &fakeQuerier{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scanFn: func(dest ...any) error {
				*(dest[0].(*int)) = 1
				return nil
			}}
		},
	}

	c.Assert(NewGateway(q, 0, nil).Ping(context.Background()), qt.IsNil)
}
