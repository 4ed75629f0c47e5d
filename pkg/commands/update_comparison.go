package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runtimeexceptions/server/pkg/markers"
	"github.com/runtimeexceptions/server/pkg/strava"
	"github.com/runtimeexceptions/server/pkg/types"
)

// UpdateComparison appends a tongue-in-cheek animal speed comparison to the
// activity description. When the average speed falls outside the known
// animal range there is no sensible sentence, so the command is a no-op.
type UpdateComparison struct {
	Remote  RemoteAPI
	Animals AnimalPicker
	Runner  *types.Runner
}

func (c *UpdateComparison) Do(ctx context.Context, activityID int64) error {
	logger := slog.With("runner_id", c.Runner.StravaID, "activity_id", activityID)
	logger.Info("Updating animal comparison")

	detail, err := c.Remote.Activity(ctx, activityID)
	if err != nil {
		return err
	}

	if detail.AverageSpeed <= 0 {
		logger.Info("No average speed recorded, skipping comparison")
		return nil
	}
	kph := detail.AverageSpeed * 3.6

	faster, err := c.Animals.Faster(ctx, kph)
	if err != nil {
		return fmt.Errorf("faster animal lookup failed: %w", err)
	}
	slower, err := c.Animals.Slower(ctx, kph)
	if err != nil {
		return fmt.Errorf("slower animal lookup failed: %w", err)
	}
	if faster == nil || slower == nil {
		logger.Info("Speed outside animal range, skipping comparison", "kph", kph)
		return nil
	}

	sentence := fmt.Sprintf("This was faster than a %s but slower than a %s.", slower.Name, faster.Name)
	description := markers.New(sentence, ComparisonMarker).ReplaceOrAppend(detail.Description, " ")

	_, err = c.Remote.UpdateActivity(ctx, activityID, strava.UpdatableActivity{
		Description: &description,
	})
	if err != nil {
		return err
	}

	logger.Info("Updated animal comparison", "slower", slower.Name, "faster", faster.Name)
	return nil
}
