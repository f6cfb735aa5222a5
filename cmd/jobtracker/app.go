package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"jobmate/job-tracker/internal/catalog"
	"jobmate/job-tracker/internal/config"
	"jobmate/job-tracker/internal/db"
	"jobmate/job-tracker/internal/digest"
	"jobmate/job-tracker/internal/events"
	"jobmate/job-tracker/internal/logger"
	"jobmate/job-tracker/internal/match"
	"jobmate/job-tracker/internal/tracker"
)

// app is everything a command needs, opened from configuration.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	backend *db.Backend
	svc     *tracker.Service
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	sched, err := digest.ParseSchedule(cfg.DigestSchedule)
	if err != nil {
		return nil, err
	}

	backend, err := db.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var pub events.Publisher = events.Nop{}
	if backend.Redis != nil {
		pub = events.NewRedisPublisher(backend.Redis)
	}

	svc, err := tracker.NewService(ctx, cat, backend.Adapter, tracker.Options{
		Scorer:   match.NewScorer(cfg.PremiumSource),
		Schedule: sched,
		Events:   pub,
		Logger:   log,
	})
	if err != nil {
		backend.Close()
		return nil, err
	}

	log.Debug("tracker ready",
		zap.Int("jobs", cat.Len()),
		zap.String("premiumSource", cfg.PremiumSource),
		zap.String("digestSchedule", sched.String()),
	)
	return &app{cfg: cfg, log: log, backend: backend, svc: svc}, nil
}

func (a *app) Close() {
	a.backend.Close()
	_ = a.log.Sync()
}

// withApp opens the app for the duration of fn.
func withApp(ctx context.Context, fn func(*app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
