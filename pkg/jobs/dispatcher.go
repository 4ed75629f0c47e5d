// Package jobs executes enrichment work delivered by the task queue.
//
// Every handler entry point is idempotent: redelivered jobs re-resolve the
// same local activity and re-merge the same marked annotation, so
// at-least-once delivery needs no coordination.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/commands"
	"github.com/runtimeexceptions/server/pkg/infrastructure/oauth"
	"github.com/runtimeexceptions/server/pkg/observability"
	"github.com/runtimeexceptions/server/pkg/strava"
	"github.com/runtimeexceptions/server/pkg/types"
)

// Dispatcher routes one delivered job event to its enrichment command.
type Dispatcher struct {
	DB           shared.Database
	Weather      commands.WeatherLookup
	Animals      commands.AnimalPicker
	ClientID     string
	ClientSecret string

	// NewRemote overrides the authenticated client construction, for tests.
	NewRemote func(runner *types.Runner) commands.RemoteAPI
}

// Handle decodes a job envelope and runs the command bound to topic. A
// returned error signals the substrate to redeliver.
func (d *Dispatcher) Handle(ctx context.Context, topic string, e cloudevents.Event) error {
	var job types.EnrichmentJob
	if err := json.Unmarshal(e.Data(), &job); err != nil {
		// A malformed payload never becomes deliverable; redelivering it
		// would loop forever.
		slog.Error("Dropping undecodable job", "topic", topic, "error", err)
		observability.JobsProcessed.WithLabelValues(topic, "dropped").Inc()
		return nil
	}

	logger := slog.With("topic", topic, "runner_id", job.RunnerID, "activity_id", job.ActivityID)
	logger.Info("Handling enrichment job")

	if err := d.handle(ctx, topic, &job); err != nil {
		logger.Error("Enrichment job failed", "error", err)
		observability.JobsProcessed.WithLabelValues(topic, "error").Inc()
		return err
	}

	if job.EventID != "" {
		if err := d.DB.MarkEventProcessed(ctx, job.EventID); err != nil {
			logger.Warn("Failed to mark event processed", "event_id", job.EventID, "error", err)
		}
	}

	observability.JobsProcessed.WithLabelValues(topic, "ok").Inc()
	logger.Info("Enrichment job complete")
	return nil
}

func (d *Dispatcher) handle(ctx context.Context, topic string, job *types.EnrichmentJob) error {
	runner, err := d.DB.GetRunner(ctx, job.RunnerID)
	if err != nil {
		return fmt.Errorf("failed to get runner %s: %w", job.RunnerID, err)
	}

	remote := d.newRemote(runner)

	finder := &commands.FindOrCreateActivity{
		DB:      d.DB,
		Remote:  remote,
		Weather: d.Weather,
		Runner:  runner,
	}
	if _, err := finder.Do(ctx, job.ActivityID); err != nil {
		return err
	}

	switch topic {
	case shared.TopicWeatherUpdate:
		cmd := &commands.UpdateWeather{DB: d.DB, Remote: remote, Runner: runner}
		return cmd.Do(ctx, job.ActivityID)
	case shared.TopicComparisonUpdate:
		cmd := &commands.UpdateComparison{Remote: remote, Animals: d.Animals, Runner: runner}
		return cmd.Do(ctx, job.ActivityID)
	case shared.TopicTriathlonScoreUpdate:
		cmd := &commands.UpdateTriathlonScore{Remote: remote, Runner: runner}
		return cmd.Do(ctx, job.ActivityID)
	default:
		return fmt.Errorf("no command bound to topic %s", topic)
	}
}

func (d *Dispatcher) newRemote(runner *types.Runner) commands.RemoteAPI {
	if d.NewRemote != nil {
		return d.NewRemote(runner)
	}
	source := oauth.NewRunnerTokenSource(d.DB, runner.StravaID, d.ClientID, d.ClientSecret)
	return strava.NewClient(oauth.NewHTTPClient(source))
}
