package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace"
)

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, "unique_violation"},
		{"wrapped undefined table", fmt.Errorf("select: %w", &pgconn.PgError{Code: "42P01"}), "undefined_table"},
		{"other pg code", &pgconn.PgError{Code: "22P02"}, "pg_22P02"},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), "timeout"},
		{"connection", errors.New("failed to connect: connection refused"), "connection"},
		{"unknown", errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qt.New(t).Assert(ClassifyDBErr(tt.err), qt.Equals, tt.want)
		})
	}
}

func TestObserveDB_NilPromRunsFn(t *testing.T) {
	c := qt.New(t)

	var p *Prom
	called := false

	err := p.ObserveDB("users.get", func() error {
		called = true
		return nil
	})

	c.Assert(err, qt.IsNil)
	c.Assert(called, qt.IsTrue)
}

func TestObserveDB_CountsErrorsByClass(t *testing.T) {
	c := qt.New(t)

	p := NewProm(prometheus.NewRegistry())
	want := &pgconn.PgError{Code: "23505"}

	err := p.ObserveDB("users.create", func() error { return want })

	c.Assert(err, qt.Equals, error(want))
	c.Assert(testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("users.create", "unique_violation")), qt.Equals, float64(1))
}

func TestObserveGateAndProbe(t *testing.T) {
	c := qt.New(t)

	p := NewProm(prometheus.NewRegistry())
	p.ObserveGate("unauthorized")
	p.ObserveProbe("table:advertisement", true, nil)
	p.ObserveProbe("column:user.role", false, errors.New("x"))

	c.Assert(testutil.ToFloat64(p.AdminGateTotal.WithLabelValues("unauthorized")), qt.Equals, float64(1))
	c.Assert(testutil.ToFloat64(p.SchemaProbesTotal.WithLabelValues("table:advertisement", "present")), qt.Equals, float64(1))
	c.Assert(testutil.ToFloat64(p.SchemaProbesTotal.WithLabelValues("column:user.role", "error")), qt.Equals, float64(1))
}

func TestTraceHandler_AddsSpanIDs(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	log := slog.New(NewTraceHandler(slog.NewJSONHandler(&buf, nil)))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	log.InfoContext(ctx, "http_request")

	var got map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &got), qt.IsNil)
	c.Assert(got["trace_id"], qt.Equals, "4bf92f3577b34da6a3ce929d0e0e4736")
	c.Assert(got["span_id"], qt.Equals, "00f067aa0ba902b7")
}

func TestTraceHandler_NoSpanNoIDs(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	log := slog.New(NewTraceHandler(slog.NewJSONHandler(&buf, nil)))

	log.InfoContext(context.Background(), "plain")

	var got map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &got), qt.IsNil)
	_, ok := got["trace_id"]
	c.Assert(ok, qt.IsFalse)
}

func TestNewLogger_StampsServiceAndLevel(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	log := newLogger(&buf, "prod", "devjobs-api")

	log.Debug("hidden")
	c.Assert(buf.Len(), qt.Equals, 0)

	log.Info("visible")

	var got map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &got), qt.IsNil)
	c.Assert(got["service"], qt.Equals, "devjobs-api")
	c.Assert(got["env"], qt.Equals, "prod")
}
