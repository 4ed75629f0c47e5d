package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/types"
)

// RecentActivityThreshold is the window inside which a newly-seen activity
// still gets a weather lookup. Older activities would get conditions from
// the wrong moment, so they are cached without weather.
const RecentActivityThreshold = 900 * time.Second

// FindOrCreateActivity is the idempotence anchor of the pipeline: repeated
// enrichment triggers for the same activity resolve to the same local row
// without re-fetching remote detail.
type FindOrCreateActivity struct {
	DB      shared.Database
	Remote  RemoteAPI
	Weather WeatherLookup
	Runner  *types.Runner

	// Now overrides time.Now, for tests.
	Now func() time.Time
}

// Do returns the local Activity for stravaID, creating it on first access.
// Weather is attached at creation time only, and only when the remote detail
// has an end coordinate and started inside the recency window.
func (c *FindOrCreateActivity) Do(ctx context.Context, stravaID int64) (*types.Activity, error) {
	logger := slog.With("runner_id", c.Runner.StravaID, "activity_id", stravaID)

	activity, err := c.DB.GetActivity(ctx, stravaID)
	if err == nil {
		logger.Info("Found existing activity")
		return activity, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("activity lookup failed: %w", err)
	}

	logger.Info("Activity not found locally, fetching from Strava")
	detail, err := c.Remote.Activity(ctx, stravaID)
	if err != nil {
		return nil, err
	}

	weatherID := ""
	if c.shouldFetchWeather(detail.EndLatLng != nil, detail.StartDate) {
		lat, lng := detail.EndLatLng.Lat(), detail.EndLatLng.Lng()
		logger.Info("Fetching weather", "latitude", lat, "longitude", lng)
		w, err := c.Weather.FromLatLng(ctx, lat, lng)
		if err != nil {
			return nil, fmt.Errorf("weather lookup failed: %w", err)
		}
		weatherID = w.ID
	} else {
		logger.Info("Not setting weather",
			"has_end_latlng", detail.EndLatLng != nil,
			"start_date", detail.StartDate)
	}

	activity = &types.Activity{
		StravaID:  detail.ID,
		RunnerID:  c.Runner.StravaID,
		Type:      detail.Type,
		WeatherID: weatherID,
		CreatedAt: c.now(),
	}

	if err := c.DB.CreateActivity(ctx, activity); err != nil {
		// A concurrent job won the create race; the existing row is the
		// answer, not an error.
		if errors.Is(err, shared.ErrAlreadyExists) {
			logger.Info("Activity created concurrently, re-reading")
			existing, getErr := c.DB.GetActivity(ctx, stravaID)
			if getErr != nil {
				return nil, fmt.Errorf("contract violation: activity %d exists but cannot be read: %w", stravaID, getErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	logger.Info("Created new activity", "type", activity.Type, "weather_id", weatherID)

	return activity, nil
}

func (c *FindOrCreateActivity) shouldFetchWeather(hasEndCoordinate bool, startDate time.Time) bool {
	if !hasEndCoordinate || startDate.IsZero() {
		return false
	}
	diff := c.now().Sub(startDate)
	if diff < 0 {
		diff = -diff
	}
	return diff <= RecentActivityThreshold
}

func (c *FindOrCreateActivity) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
