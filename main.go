package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/config"
	"github.com/Jeomhps/reservation-planner/internal/db"
	"github.com/Jeomhps/reservation-planner/internal/logging"
	"github.com/Jeomhps/reservation-planner/internal/router"
	"github.com/Jeomhps/reservation-planner/internal/seed"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	schema := flag.String("schema", cfg.SchemaMode, "Schema mode at boot: ensure, reset or none")
	flag.Parse()
	switch *schema {
	case config.SchemaEnsure, config.SchemaReset, config.SchemaNone:
		cfg.SchemaMode = *schema
	default:
		fmt.Fprintf(os.Stderr, "invalid -schema %q\n", *schema)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fixture, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}

	d, err := db.Open(ctx, db.Dialect(cfg.DatabaseType), cfg.DSN(), db.Pool{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		PingAttempts:    30,
	})
	if err != nil {
		return err
	}
	defer d.Close()
	log.Info("database connected", zap.String("dialect", cfg.DatabaseType))

	if err := prepareSchema(ctx, d, cfg.SchemaMode, fixture, log); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	r, err := router.New(router.Deps{
		DB:            d,
		Log:           log,
		Fixture:       fixture,
		JWTSecret:     cfg.JWTSecret,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	return srv.Shutdown(shutdownCtx)
}

func prepareSchema(ctx context.Context, d *db.DB, mode string, fixture seed.Fixture, log *zap.Logger) error {
	switch mode {
	case config.SchemaEnsure:
		if err := d.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	case config.SchemaReset:
		res, err := seed.Reset(ctx, d, &fixture)
		if err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
		log.Info("schema reset and seeded",
			zap.Int("customers", res.Customers),
			zap.Int("restaurants", res.Restaurants),
			zap.Int("reservations", res.Reservations),
		)
		return nil
	}
	log.Info("schema ready", zap.String("mode", mode))
	return nil
}
