// Package main is the entry point for the planner API server.
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

	"github.com/tourday/planner/internal/app"
	"github.com/tourday/planner/internal/config"
	"github.com/tourday/planner/internal/events"
	"github.com/tourday/planner/internal/handler"
	"github.com/tourday/planner/internal/middleware"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := app.NewLogger(cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	// ctx is cancelled on SIGINT/SIGTERM and stops the event hub.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Events -----------------------------------------------------------
	hub := events.NewHub(logger)
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()

	// --- Storage and services ---------------------------------------------
	svc, err := app.Open(ctx, cfg, logger, events.NewBroadcaster(hub, logger), true)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()
	slog.Info("store ready", "driver", cfg.StoreDriver)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID, RealIP, Logger, Recoverer, CORS, MaxBodySize.
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

	server := handler.NewServer(svc.Plans, svc.Schedule, svc.Checklists, hub, handler.Options{
		Log:             logger,
		DefaultCurrency: cfg.DefaultCurrency,
		CheckOrigin:     middleware.OriginChecker(cfg.CORSOrigins),
	})
	server.RegisterRoutes(r)

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout does not apply to hijacked websocket connections.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful shutdown: wait for a signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		slog.Error("server error", "error", err)
		stop()
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	<-hubDone
	slog.Info("server stopped")
}
