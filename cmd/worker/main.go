// The worker binary consumes enrichment jobs from the three job topics and
// runs the matching command. Delivery is at-least-once; every handler is
// idempotent, so a Nack-and-redeliver is always safe.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/animals"
	"github.com/runtimeexceptions/server/pkg/bootstrap"
	infrasentry "github.com/runtimeexceptions/server/pkg/infrastructure/sentry"
	"github.com/runtimeexceptions/server/pkg/jobs"
	"github.com/runtimeexceptions/server/pkg/weather"
)

// subscriptionID derives the pull subscription bound to a job topic.
func subscriptionID(topic string) string {
	return topic + "-sub"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		slog.Error("Service init failed", "error", err)
		os.Exit(1)
	}
	cfg := svc.Config

	if err := infrasentry.Init(infrasentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: os.Getenv("ENVIRONMENT"),
		ServerName:  "worker",
	}, slog.Default()); err != nil {
		slog.Error("Sentry init failed", "error", err)
		os.Exit(1)
	}
	defer infrasentry.Flush(2 * time.Second)

	psClient, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		slog.Error("PubSub init failed", "error", err)
		os.Exit(1)
	}
	defer psClient.Close()

	dispatcher := &jobs.Dispatcher{
		DB:           svc.DB,
		Weather:      weather.NewClient(svc.DB, cfg.OWMAPIKey),
		Animals:      animals.NewStore(svc.DB),
		ClientID:     cfg.StravaClientID,
		ClientSecret: cfg.StravaClientSecret,
	}

	var wg sync.WaitGroup
	for _, topic := range shared.EnrichmentTopics {
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			receive(ctx, psClient, topic, dispatcher)
		}(topic)
	}

	slog.Info("Worker started", "topics", shared.EnrichmentTopics)
	wg.Wait()
	slog.Info("Worker stopped")
}

func receive(ctx context.Context, client *pubsub.Client, topic string, dispatcher *jobs.Dispatcher) {
	sub := client.Subscription(subscriptionID(topic))
	err := sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		defer infrasentry.RecoverAndCapture(slog.Default())

		var e cloudevents.Event
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			// Not a CloudEvent envelope; redelivery cannot fix it.
			slog.Error("Dropping non-CloudEvent message", "topic", topic, "error", err)
			msg.Ack()
			return
		}
		if err := dispatcher.Handle(ctx, topic, e); err != nil {
			infrasentry.CaptureException(err, map[string]interface{}{"topic": topic}, slog.Default())
			msg.Nack()
			return
		}
		msg.Ack()
	})
	if err != nil && ctx.Err() == nil {
		slog.Error("Receive stopped", "topic", topic, "error", err)
	}
}
