package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/markers"
	"github.com/runtimeexceptions/server/pkg/strava"
	"github.com/runtimeexceptions/server/pkg/types"
	"github.com/runtimeexceptions/server/pkg/weather"
)

// validWeatherTypes are the activity types that get weather annotations.
var validWeatherTypes = map[string]bool{
	types.ActivityTypeRun:  true,
	types.ActivityTypeRide: true,
	types.ActivityTypeWalk: true,
}

// UpdateWeather merges the cached weather snapshot into the live remote
// name (emoji) and description (full conditions). Activities without an
// attached snapshot, or of other types, are a silent no-op: absent weather
// is an expected steady state, not a failure.
type UpdateWeather struct {
	DB     shared.Database
	Remote RemoteAPI
	Runner *types.Runner
}

func (c *UpdateWeather) Do(ctx context.Context, activityID int64) error {
	logger := slog.With("runner_id", c.Runner.StravaID, "activity_id", activityID)
	logger.Info("Updating weather annotation")

	// The annotation must land on the live remote text, not a stale cache.
	detail, err := c.Remote.Activity(ctx, activityID)
	if err != nil {
		return err
	}

	local, err := c.DB.GetActivity(ctx, detail.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			logger.Warn("No local activity cached, skipping weather annotation")
			return nil
		}
		return fmt.Errorf("activity lookup failed: %w", err)
	}

	if !validWeatherTypes[local.Type] || local.WeatherID == "" {
		logger.Info("Activity not eligible for weather annotation", "type", local.Type)
		return nil
	}

	snapshot, err := c.DB.GetWeather(ctx, local.WeatherID)
	if err != nil {
		return fmt.Errorf("weather snapshot lookup failed: %w", err)
	}

	name := markers.New(weather.Emoji(snapshot), WeatherMarker).ReplaceOrAppend(detail.Name, " ")
	description := markers.New(weather.Long(snapshot), WeatherMarker).ReplaceOrAppend(detail.Description, " ")

	_, err = c.Remote.UpdateActivity(ctx, activityID, strava.UpdatableActivity{
		Name:        &name,
		Description: &description,
	})
	if err != nil {
		return err
	}

	logger.Info("Updated weather annotation", "status", snapshot.Status)
	return nil
}
