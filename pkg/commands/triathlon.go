package commands

import (
	"math"

	"github.com/runtimeexceptions/server/pkg/types"
)

// TriathlonDistances are the Olympic-distance legs in metres.
var TriathlonDistances = map[string]float64{
	types.ActivityTypeSwim: 1500,
	types.ActivityTypeRide: 40000,
	types.ActivityTypeRun:  10000,
}

// TriathlonPercentage reports how much of the matching Olympic triathlon leg
// a distance covers, as a percentage rounded to two decimals. Activity types
// without a leg score zero.
func TriathlonPercentage(activityType string, distance float64) float64 {
	leg, ok := TriathlonDistances[activityType]
	if !ok || distance <= 0 {
		return 0
	}
	return math.Round(distance/leg*100*100) / 100
}
