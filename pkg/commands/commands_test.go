package commands

import (
	"context"
	"fmt"

	"github.com/runtimeexceptions/server/pkg/strava"
	"github.com/runtimeexceptions/server/pkg/types"
)

var testRunner = &types.Runner{StravaID: "456", AccessToken: "token"}

// fakeRemote serves a canned activity and records patches.
type fakeRemote struct {
	activity      *strava.DetailedActivity
	activityErr   error
	activityCalls int
	patches       []strava.UpdatableActivity
}

func (f *fakeRemote) Activity(ctx context.Context, activityID int64) (*strava.DetailedActivity, error) {
	f.activityCalls++
	if f.activityErr != nil {
		return nil, f.activityErr
	}
	if f.activity == nil {
		return nil, fmt.Errorf("no activity configured")
	}
	return f.activity, nil
}

func (f *fakeRemote) UpdateActivity(ctx context.Context, activityID int64, patch strava.UpdatableActivity) (*strava.DetailedActivity, error) {
	f.patches = append(f.patches, patch)
	updated := *f.activity
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	f.activity = &updated
	return &updated, nil
}

type fakeWeatherLookup struct {
	weather *types.Weather
	err     error
	calls   int
}

func (f *fakeWeatherLookup) FromLatLng(ctx context.Context, lat, lng float64) (*types.Weather, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.weather, nil
}

type fakeAnimals struct {
	faster *types.Animal
	slower *types.Animal
}

func (f *fakeAnimals) Faster(ctx context.Context, kph float64) (*types.Animal, error) {
	return f.faster, nil
}

func (f *fakeAnimals) Slower(ctx context.Context, kph float64) (*types.Animal, error) {
	return f.slower, nil
}
