package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestCache_ExpiresAfterTTL(t *testing.T) {
	c := qt.New(t)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cc := New[string](time.Minute)
	cc.now = func() time.Time { return now }

	cc.Set("k", "v")
	v, ok := cc.Get("k")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "v")

	now = now.Add(2 * time.Minute)
	_, ok = cc.Get("k")
	c.Assert(ok, qt.IsFalse)
}

func TestCache_GetOrLoadCachesSuccessOnly(t *testing.T) {
	c := qt.New(t)

	cc := New[int](time.Minute)
	calls := 0
	fail := true

	load := func(context.Context) (int, error) {
		calls++
		if fail {
			return 0, errors.New("catalog unavailable")
		}
		return 42, nil
	}

	_, err := cc.GetOrLoad(context.Background(), "k", load)
	c.Assert(err, qt.ErrorMatches, "catalog unavailable")

	fail = false
	v, err := cc.GetOrLoad(context.Background(), "k", load)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, 42)

	v, err = cc.GetOrLoad(context.Background(), "k", load)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, 42)
	c.Assert(calls, qt.Equals, 2)
}

func TestCache_Clear(t *testing.T) {
	c := qt.New(t)

	cc := New[bool](0)
	cc.Set("a", true)
	cc.Set("b", true)
	cc.Delete("a")
	cc.Clear()

	_, ok := cc.Get("b")
	c.Assert(ok, qt.IsFalse)
}

func TestCache_EvictKeepsRefreshedEntry(t *testing.T) {
	c := qt.New(t)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	cc := New[string](time.Minute)
	cc.now = func() time.Time { return now }

	cc.Set("k", "old")

	// a reader saw the entry expired at stale, then a writer refreshed it
	stale := start.Add(2 * time.Minute)
	now = stale
	cc.Set("k", "new")

	cc.evictExpired("k", stale)

	v, ok := cc.Get("k")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "new")

	cc.evictExpired("k", stale.Add(2*time.Minute))
	_, ok = cc.Get("k")
	c.Assert(ok, qt.IsFalse)
}
