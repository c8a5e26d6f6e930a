// Package main is the entry point for the Trip Tracker API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/pressly/goose/v3"

	"github.com/mkumaran/trip-tracker/backend/internal/auth"
	"github.com/mkumaran/trip-tracker/backend/internal/config"
	"github.com/mkumaran/trip-tracker/backend/internal/handler"
	"github.com/mkumaran/trip-tracker/backend/internal/middleware"
	"github.com/mkumaran/trip-tracker/backend/internal/repo"
	"github.com/mkumaran/trip-tracker/backend/internal/service"
	"github.com/mkumaran/trip-tracker/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// An unreachable database is not fatal: the trip endpoints degrade to
	// the read-only JSON fallback file on the first failed query. Log loudly
	// and keep going.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Warn("database unreachable at startup, trips will degrade to fallback file on first query",
			"error", err)
	} else {
		slog.Info("database connection established")
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	// --- Wiring -----------------------------------------------------------
	tripRepo := repo.NewTripRepository(
		repo.NewPGTripStore(pool),
		repo.NewFileTripStore(cfg.TripsFile, logger),
		logger,
	)

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	tripSvc := service.NewTripService(tripRepo)
	masterSvc := service.NewMasterService(
		repo.NewDriverRepo(pool),
		repo.NewVehicleRepo(pool),
		repo.NewItemRepo(pool),
		repo.NewPurchasePlaceRepo(pool),
		repo.NewPartnerRepo(pool),
	)
	authSvc := service.NewAuthService(repo.NewUserRepo(pool), tokens)
	exportSvc := service.NewExportService(tripRepo)

	server := handler.NewServer(tripSvc, masterSvc, authSvc, exportSvc, tripRepo)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", server.Routes(middleware.RequireAuth(tokens)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies any pending goose migrations using the embedded
// SQL files. goose needs a database/sql handle, so it gets its own
// short-lived connection via the pgx stdlib adapter.
func runMigrations(databaseURL string) error {
	db, err := goose.OpenDBWithDriver("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
