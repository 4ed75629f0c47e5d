// Package commands implements the enrichment pipeline's units of work: the
// idempotent activity find-or-create and the three annotation commands.
//
// Every command is safe to re-run: find-or-create never duplicates local
// rows, and annotations are merged through marker-scoped replace-not-append,
// so at-least-once job redelivery needs no coordination.
package commands

import (
	"context"

	"github.com/runtimeexceptions/server/pkg/strava"
	"github.com/runtimeexceptions/server/pkg/types"
)

// Marker delimiter pairs, one per command. They are invisible unicode
// variation selectors, distinct so independent annotations never collide in
// the same field.
const (
	WeatherMarker        = "\ufe00\ufe01"
	TriathlonScoreMarker = "\ufe01\ufe02"
	ComparisonMarker     = "\ufe03\ufe04"
)

// RemoteAPI is the slice of the Strava client the commands use.
type RemoteAPI interface {
	Activity(ctx context.Context, activityID int64) (*strava.DetailedActivity, error)
	UpdateActivity(ctx context.Context, activityID int64, patch strava.UpdatableActivity) (*strava.DetailedActivity, error)
}

// WeatherLookup fetches and persists current conditions for a coordinate.
type WeatherLookup interface {
	FromLatLng(ctx context.Context, lat, lng float64) (*types.Weather, error)
}

// AnimalPicker selects comparison animals relative to a speed in km/h.
type AnimalPicker interface {
	Faster(ctx context.Context, kph float64) (*types.Animal, error)
	Slower(ctx context.Context, kph float64) (*types.Animal, error)
}
