package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runtimeexceptions/server/pkg/markers"
	"github.com/runtimeexceptions/server/pkg/strava"
	"github.com/runtimeexceptions/server/pkg/types"
)

// UpdateTriathlonScore annotates the description with the share of an
// Olympic triathlon leg this activity covers. The merge is unconditional:
// activities without a matching leg score 0.00. The score always lands in
// the description; any stale score in the name (from an earlier format) is
// stripped in the same patch.
type UpdateTriathlonScore struct {
	Remote RemoteAPI
	Runner *types.Runner
}

func (c *UpdateTriathlonScore) Do(ctx context.Context, activityID int64) error {
	logger := slog.With("runner_id", c.Runner.StravaID, "activity_id", activityID)
	logger.Info("Updating triathlon score")

	detail, err := c.Remote.Activity(ctx, activityID)
	if err != nil {
		return err
	}

	percentage := TriathlonPercentage(detail.Type, detail.Distance)
	score := fmt.Sprintf("tri%%: %.2f.", percentage)
	marked := markers.New(score, TriathlonScoreMarker)
	description := marked.ReplaceOrAppend(detail.Description, " ")
	name := marked.RemoveFromText(detail.Name)

	_, err = c.Remote.UpdateActivity(ctx, activityID, strava.UpdatableActivity{
		Name:        &name,
		Description: &description,
	})
	if err != nil {
		return err
	}

	logger.Info("Updated triathlon score", "percentage", percentage)
	return nil
}
