// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

// Package store opens the PostgreSQL pool and manages the schema.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// ConnectOptions tune how Connect waits for the database.
type ConnectOptions struct {
	// Timeout bounds the whole connection attempt. Zero means 30s.
	Timeout time.Duration

	// BaseDelay is the first backoff interval. Zero means 250ms.
	BaseDelay time.Duration

	// MaxDelay caps a single backoff interval. Zero means 5s.
	MaxDelay time.Duration

	// Logger receives one line per failed attempt. Nil uses slog.Default.
	Logger *slog.Logger
}

func (o ConnectOptions) withDefaults() ConnectOptions {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = 250 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 5 * time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o ConnectOptions) backoff() retry.Backoff {
	b := retry.NewExponential(o.BaseDelay)
	b = retry.WithJitterPercent(10, b)
	return retry.WithCappedDuration(o.MaxDelay, b)
}

// Connect opens a pgx pool and pings it with exponential backoff until the
// database answers or opts.Timeout elapses.
func Connect(ctx context.Context, databaseURL string, opts ConnectOptions) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, oops.Code("STORE_INVALID_URL").Errorf("database URL is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, oops.Code("STORE_INVALID_URL").Wrap(err)
	}

	opts = opts.withDefaults()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("STORE_CONNECT_FAILED").With("host", cfg.ConnConfig.Host).Wrap(err)
	}

	if err := waitReady(ctx, opts, pool.Ping); err != nil {
		pool.Close()
		return nil, oops.Code("STORE_CONNECT_FAILED").
			With("host", cfg.ConnConfig.Host).
			With("timeout", opts.Timeout).
			Wrap(err)
	}
	return pool, nil
}

// waitReady calls ping until it succeeds, the context ends or the timeout
// elapses.
func waitReady(ctx context.Context, opts ConnectOptions, ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	attempt := 0
	return retry.Do(ctx, opts.backoff(), func(ctx context.Context) error {
		attempt++
		if err := ping(ctx); err != nil {
			opts.Logger.WarnContext(ctx, "database not ready", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
