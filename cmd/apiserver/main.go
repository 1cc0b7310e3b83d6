package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kostscope/kostscope/internal/apiserver"
	"github.com/kostscope/kostscope/internal/config"
	"github.com/kostscope/kostscope/internal/mock"
	"github.com/kostscope/kostscope/internal/snapshot"
	"github.com/kostscope/kostscope/internal/store"
	"github.com/kostscope/kostscope/pkg/insight"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "/etc/kostscope/config.yaml", "Path to config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		slog.Warn("config file not loaded, using defaults/env", "path", configFile, "error", err)
		cfg = config.DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("starting KostScope",
		"port", cfg.Server.Port,
		"database", cfg.Database.Path,
		"ai", cfg.AI.Enabled,
	)

	// Open the database; fall back to in-memory so a missing or unwritable
	// path degrades service instead of failing startup.
	db, err := store.Open(store.Config{Path: cfg.Database.Path})
	if err != nil {
		slog.Warn("database open failed, falling back to in-memory store", "error", err)
		db, err = store.OpenInMemory()
		if err != nil {
			slog.Error("in-memory store open failed", "error", err)
			os.Exit(1)
		}
	}
	defer db.Close()

	seeder := mock.NewSeeder(db, cfg.Mock.Clusters)

	// Seed once at startup so the demo data exists before the first request.
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seeder.EnsureClusters(seedCtx); err != nil {
		slog.Error("startup cluster seeding failed", "error", err)
	}
	if err := seeder.EnsureAlerts(seedCtx); err != nil {
		slog.Error("startup alert seeding failed", "error", err)
	}
	seedCancel()

	svc := insight.New(insight.Config{
		Enabled: cfg.AI.Enabled,
		Model:   cfg.AI.Model,
		Timeout: time.Duration(cfg.AI.Timeout),
	})

	// Daily cost snapshots: record now, then on the configured schedule.
	recorder := snapshot.NewRecorder(db)
	var sched *cron.Cron
	if cfg.Snapshots.Enabled {
		recorder.RecordLogged()
		sched = cron.New()
		if _, err := sched.AddFunc(cfg.Snapshots.Schedule, recorder.RecordLogged); err != nil {
			slog.Error("invalid snapshot schedule", "schedule", cfg.Snapshots.Schedule, "error", err)
			os.Exit(1)
		}
		sched.Start()
	}

	srv := apiserver.NewServer(cfg, db, seeder, svc)

	go func() {
		slog.Info("API server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("API server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	if sched != nil {
		sched.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
