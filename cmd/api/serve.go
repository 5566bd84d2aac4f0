package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/geocoder89/devjobs/internal/config"
	"github.com/geocoder89/devjobs/internal/db"
	httpx "github.com/geocoder89/devjobs/internal/http"
	"github.com/geocoder89/devjobs/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env, cfg.ServiceName)
	slog.SetDefault(log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: cfg.ServiceName,
		Env:         cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	pool, err := db.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	deps, resolver := httpx.NewPostgresDeps(pool, cfg, prom)
	deps.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})

	// probe once up front so the first requests hit a warm cache
	snap, err := resolver.Snapshot(ctx)
	if err != nil {
		log.Warn("schema probe failed at startup", "err", err)
	} else {
		log.Info("schema resolved", "ads_table", snap.AdsTable, "user_role", snap.UserColumns.Role, "user_active", snap.UserColumns.Active)
	}

	if !cfg.AdminConfigured() {
		log.Warn("ADMIN_PASSWORD not set, protected routes will answer admin_not_configured")
	}

	var draining atomic.Bool
	deps.ShuttingDown = draining.Load

	router := httpx.NewRouter(log, cfg, deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("server shutting down")
		draining.Store(true)
	case err := <-serverErr:
		pool.Close()
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := config.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}

	// in-flight requests are done, the pool can go
	pool.Close()

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", "err", err)
	}

	log.Info("shutdown complete")

	return nil
}
