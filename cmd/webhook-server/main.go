// The webhook-server binary serves the push-event endpoint, the account
// linking flow and Prometheus metrics.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/runtimeexceptions/server/pkg/bootstrap"
	infrasentry "github.com/runtimeexceptions/server/pkg/infrastructure/sentry"
	"github.com/runtimeexceptions/server/pkg/linking"
	"github.com/runtimeexceptions/server/pkg/webhook"
)

func main() {
	ctx := context.Background()

	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		slog.Error("Service init failed", "error", err)
		os.Exit(1)
	}
	cfg := svc.Config

	if err := infrasentry.Init(infrasentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: os.Getenv("ENVIRONMENT"),
		ServerName:  "webhook-server",
	}, slog.Default()); err != nil {
		slog.Error("Sentry init failed", "error", err)
		os.Exit(1)
	}
	defer infrasentry.Flush(2 * time.Second)

	webhookHandler := &webhook.Handler{
		DB:          svc.DB,
		Pub:         svc.Pub,
		VerifyToken: cfg.VerifyToken,
	}
	linkHandler := &linking.Handler{
		DB:           svc.DB,
		ClientID:     cfg.StravaClientID,
		ClientSecret: cfg.StravaClientSecret,
		RedirectURL:  cfg.CallbackURL,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Handle("/webhook", webhookHandler)
	r.Get("/strava/auth", linkHandler.Authorize)
	r.Get("/strava/callback", linkHandler.Callback)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	slog.Info("Listening", "address", cfg.HTTPAddress)
	if err := http.ListenAndServe(cfg.HTTPAddress, r); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
