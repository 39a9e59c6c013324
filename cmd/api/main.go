// Package main is the entry point for the trip planner API server.
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
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/links"
	"github.com/pkordes/trip-planner/internal/mail"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/migrations"
	"github.com/pkordes/trip-planner/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default logger: ours is not configured yet.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.AutoMigrate {
		// goose needs database/sql; borrow a connection from the pool.
		db := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(context.Background(), db)
		_ = db.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Mail -------------------------------------------------------------
	lb, err := links.New(cfg.APIBaseURL, cfg.WebBaseURL)
	if err != nil {
		slog.Error("invalid base url", "error", err)
		os.Exit(1)
	}
	dates, err := mail.NewDateFormatter(cfg.DateLocale)
	if err != nil {
		slog.Error("invalid date locale", "error", err, "supported", mail.SupportedLocales())
		os.Exit(1)
	}
	sender, err := mail.NewSender(mail.SMTPConfig{
		Host:        cfg.Mail.Host,
		Port:        cfg.Mail.Port,
		Username:    cfg.Mail.Username,
		Password:    cfg.Mail.APIKey,
		Timeout:     cfg.Mail.Timeout,
		FromName:    cfg.Mail.FromName,
		FromAddress: cfg.Mail.FromAddress,
	})
	if err != nil {
		slog.Error("invalid mail configuration", "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	m := metrics.New(prometheus.DefaultRegisterer)
	tripRepo := repo.NewTripRepo(pool)
	participantRepo := repo.NewParticipantRepo(pool)
	notifier := service.NewNotifier(sender, cfg.Mail.Concurrency, logger, m)
	tripSvc := service.NewTripService(tripRepo, participantRepo, mail.NewComposer(dates, lb), notifier, m)
	participantSvc := service.NewParticipantService(participantRepo, m)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit. Recoverer sits inside the logger so a panic is
	// still logged as a 500.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})
	server := handler.NewServer(tripSvc, participantSvc, lb)
	r.Mount("/", handler.NewHTTPHandler(server, logger))

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for ConfirmTrip, which waits on every
	// invitee's SMTP exchange before answering.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.WriteTimeout(domain.MaxInvitees),
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "api_base_url", cfg.APIBaseURL)
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
