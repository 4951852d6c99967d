// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package main

import (
	"context"
	"crypto/rand"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/quizcard/credcheck/internal/account"
	"github.com/quizcard/credcheck/internal/account/postgres"
	"github.com/quizcard/credcheck/internal/config"
	"github.com/quizcard/credcheck/internal/credential"
	"github.com/quizcard/credcheck/internal/logging"
	"github.com/quizcard/credcheck/internal/observability"
	"github.com/quizcard/credcheck/internal/store"
	"github.com/quizcard/credcheck/internal/web"
)

// shutdownTimeout bounds graceful shutdown of both listeners.
const shutdownTimeout = 10 * time.Second

// migrator is the subset of store.Migrator used at startup.
type migrator interface {
	Up() error
	Close() error
}

// serveDeps holds the factories runServeWithDeps calls so tests can replace them.
type serveDeps struct {
	Connect     func(ctx context.Context, databaseURL string, opts store.ConnectOptions) (*pgxpool.Pool, error)
	NewMigrator func(databaseURL string) (migrator, error)
}

func defaultServeDeps() serveDeps {
	return serveDeps{
		Connect: store.Connect,
		NewMigrator: func(databaseURL string) (migrator, error) {
			return store.NewMigrator(databaseURL)
		},
	}
}

type serveConfig struct {
	autoMigrate  bool
	secureCookie bool
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	sc := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the credential API",
		Long: `Start the HTTP API serving the credential validators.

When a database URL is configured, account signup and login are enabled
and pending migrations are applied first (disable with --auto-migrate=false).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServeWithDeps(ctx, cmd, cfg, sc, defaultServeDeps())
		},
	}

	config.BindFlags(cmd.Flags())
	cmd.Flags().BoolVar(&sc.autoMigrate, "auto-migrate", true, "apply pending migrations on startup")
	cmd.Flags().BoolVar(&sc.secureCookie, "secure-cookie", false, "mark the session cookie Secure (enable behind TLS)")

	return cmd
}

// runServeWithDeps runs the API until ctx is cancelled or a listener fails.
func runServeWithDeps(ctx context.Context, cmd *cobra.Command, cfg *config.Config, sc *serveConfig, deps serveDeps) error {
	logger := logging.SetDefault(logging.Options{
		Service: "credcheck",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   cfg.Log.Level,
		Writer:  cmd.ErrOrStderr(),
	})

	validator, err := buildValidator(validatorOptions{
		PolicyFile:    cfg.Policy.File,
		NameMaxLength: cfg.Name.MaxLength,
		Locale:        cfg.Locale,
	})
	if err != nil {
		return oops.Code("SERVE_FAILED").With("operation", "build validator").Wrap(err)
	}

	var (
		pool      *pgxpool.Pool
		readiness observability.ReadinessChecker
	)
	if cfg.Database.URL != "" {
		pool, err = openDatabase(ctx, cfg, sc, deps, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
		readiness = pool.Ping
	}

	var metrics *observability.Metrics
	var obsErrCh <-chan error
	if cfg.Metrics.Addr != "" {
		obs := observability.NewServer(cfg.Metrics.Addr, readiness)
		obsErrCh, err = obs.Start()
		if err != nil {
			return oops.Code("SERVE_FAILED").With("operation", "start observability server").Wrap(err)
		}
		defer stopWithTimeout("observability server", obs.Stop)
		metrics = obs.Metrics()
	}

	opts := []web.Option{
		web.WithMetrics(metrics),
		web.WithLogger(logger),
		web.WithSecureCookie(sc.secureCookie),
	}
	if pool != nil {
		svc, svcErr := newAccountService(cfg, pool, validator, logger)
		if svcErr != nil {
			return svcErr
		}
		opts = append(opts, web.WithAccounts(svc))
	} else {
		logger.Warn("no database configured, signup and login are disabled")
	}

	handler, err := web.NewHandler(validator, opts...)
	if err != nil {
		return oops.Code("SERVE_FAILED").With("operation", "create handler").Wrap(err)
	}

	srv := web.NewServer(cfg.HTTP.Addr, handler.Router())
	webErrCh, err := srv.Start()
	if err != nil {
		return oops.Code("SERVE_FAILED").With("operation", "start web server").Wrap(err)
	}
	defer stopWithTimeout("web server", srv.Stop)

	cmd.Printf("credcheck listening on %s\n", srv.Addr())

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err, ok := <-webErrCh:
		if !ok {
			return nil
		}
		return oops.Code("SERVE_FAILED").With("operation", "web server").Wrap(err)
	case err, ok := <-obsErrCh:
		if !ok {
			return nil
		}
		return oops.Code("SERVE_FAILED").With("operation", "observability server").Wrap(err)
	}
}

// openDatabase waits for PostgreSQL, then applies pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config, sc *serveConfig, deps serveDeps, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := deps.Connect(ctx, cfg.Database.URL, store.ConnectOptions{
		Timeout: cfg.Database.ConnectTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, oops.Code("SERVE_FAILED").With("operation", "connect to database").Wrap(err)
	}
	if !sc.autoMigrate {
		return pool, nil
	}

	m, err := deps.NewMigrator(cfg.Database.URL)
	if err != nil {
		pool.Close()
		return nil, oops.Code("SERVE_FAILED").With("operation", "create migrator").Wrap(err)
	}
	upErr := m.Up()
	if closeErr := m.Close(); closeErr != nil {
		logger.Warn("failed to close migrator", "error", closeErr)
	}
	if upErr != nil {
		pool.Close()
		return nil, oops.Code("SERVE_FAILED").With("operation", "apply migrations").Wrap(upErr)
	}
	logger.Info("database migrations applied")
	return pool, nil
}

func newAccountService(cfg *config.Config, pool *pgxpool.Pool, validator *credential.Validator, logger *slog.Logger) (*account.Service, error) {
	secret, err := tokenSecret(cfg.Token.Secret, logger)
	if err != nil {
		return nil, err
	}
	tokens, err := account.NewTokenIssuer(secret, cfg.Token.TTL)
	if err != nil {
		return nil, oops.Code("SERVE_FAILED").With("operation", "create token issuer").Wrap(err)
	}
	svc, err := account.NewService(
		postgres.NewAccountRepository(pool),
		account.NewArgon2idHasher(account.DefaultArgon2Params),
		validator,
		tokens,
		account.WithLogger(logger),
	)
	if err != nil {
		return nil, oops.Code("SERVE_FAILED").With("operation", "create account service").Wrap(err)
	}
	return svc, nil
}

// tokenSecret returns the configured secret, or a random one when none is set.
func tokenSecret(configured string, logger *slog.Logger) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	secret := make([]byte, account.MinSecretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, oops.Code("SERVE_FAILED").With("operation", "generate token secret").Wrap(err)
	}
	logger.Warn("no token secret configured, generated an ephemeral one; sessions will not survive a restart",
		"env", config.EnvTokenSecret)
	return secret, nil
}

func stopWithTimeout(name string, stop func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stop(ctx); err != nil {
		slog.Warn("shutdown failed", "component", name, "error", err)
	}
}
