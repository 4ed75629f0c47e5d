package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/strava"
	"github.com/runtimeexceptions/server/pkg/testing/mocks"
	"github.com/runtimeexceptions/server/pkg/types"
)

var testTime = time.Date(2023, 6, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testTime }

func recentActivity(id int64) *strava.DetailedActivity {
	return &strava.DetailedActivity{
		ID:        id,
		Name:      "Morning Run",
		Type:      types.ActivityTypeRun,
		StartDate: testTime.Add(-5 * time.Minute),
		EndLatLng: strava.LatLng{51.5, -0.12},
	}
}

func TestFindOrCreateReturnsExistingWithoutRemoteCall(t *testing.T) {
	existing := &types.Activity{StravaID: 123, RunnerID: "456", Type: types.ActivityTypeRun}
	remote := &fakeRemote{}
	cmd := &FindOrCreateActivity{
		DB: &mocks.MockDatabase{
			GetActivityFunc: func(ctx context.Context, stravaID int64) (*types.Activity, error) {
				return existing, nil
			},
		},
		Remote: remote,
		Runner: testRunner,
		Now:    fixedNow,
	}

	got, err := cmd.Do(context.Background(), 123)
	require.NoError(t, err)
	assert.Same(t, existing, got)
	assert.Zero(t, remote.activityCalls)
}

func TestFindOrCreateFetchesWeatherInsideWindow(t *testing.T) {
	var created *types.Activity
	weather := &fakeWeatherLookup{weather: &types.Weather{ID: "w-1"}}
	cmd := &FindOrCreateActivity{
		DB: &mocks.MockDatabase{
			GetActivityFunc: func(ctx context.Context, stravaID int64) (*types.Activity, error) {
				return nil, shared.ErrNotFound
			},
			CreateActivityFunc: func(ctx context.Context, activity *types.Activity) error {
				created = activity
				return nil
			},
		},
		Remote:  &fakeRemote{activity: recentActivity(123)},
		Weather: weather,
		Runner:  testRunner,
		Now:     fixedNow,
	}

	got, err := cmd.Do(context.Background(), 123)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "w-1", got.WeatherID)
	assert.Equal(t, int64(123), created.StravaID)
	assert.Equal(t, "456", created.RunnerID)
	assert.Equal(t, 1, weather.calls)
}

func TestFindOrCreateWeatherWindow(t *testing.T) {
	tests := []struct {
		name        string
		startDate   time.Time
		endLatLng   strava.LatLng
		wantWeather bool
	}{
		{"just inside window", testTime.Add(-899 * time.Second), strava.LatLng{51.5, -0.12}, true},
		{"exactly on window", testTime.Add(-900 * time.Second), strava.LatLng{51.5, -0.12}, true},
		{"just outside window", testTime.Add(-901 * time.Second), strava.LatLng{51.5, -0.12}, false},
		{"future start inside window", testTime.Add(300 * time.Second), strava.LatLng{51.5, -0.12}, true},
		{"no end coordinate", testTime.Add(-60 * time.Second), nil, false},
		{"zero start date", time.Time{}, strava.LatLng{51.5, -0.12}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weather := &fakeWeatherLookup{weather: &types.Weather{ID: "w-1"}}
			cmd := &FindOrCreateActivity{
				DB: &mocks.MockDatabase{
					GetActivityFunc: func(ctx context.Context, stravaID int64) (*types.Activity, error) {
						return nil, shared.ErrNotFound
					},
					CreateActivityFunc: func(ctx context.Context, activity *types.Activity) error {
						return nil
					},
				},
				Remote: &fakeRemote{activity: &strava.DetailedActivity{
					ID:        123,
					Type:      types.ActivityTypeRun,
					StartDate: tt.startDate,
					EndLatLng: tt.endLatLng,
				}},
				Weather: weather,
				Runner:  testRunner,
				Now:     fixedNow,
			}

			got, err := cmd.Do(context.Background(), 123)
			require.NoError(t, err)
			if tt.wantWeather {
				assert.Equal(t, "w-1", got.WeatherID)
				assert.Equal(t, 1, weather.calls)
			} else {
				assert.Empty(t, got.WeatherID)
				assert.Zero(t, weather.calls)
			}
		})
	}
}

func TestFindOrCreateLosesCreateRaceAndReReads(t *testing.T) {
	winner := &types.Activity{StravaID: 123, RunnerID: "456", Type: types.ActivityTypeRun}
	calls := 0
	cmd := &FindOrCreateActivity{
		DB: &mocks.MockDatabase{
			GetActivityFunc: func(ctx context.Context, stravaID int64) (*types.Activity, error) {
				calls++
				if calls == 1 {
					return nil, shared.ErrNotFound
				}
				return winner, nil
			},
			CreateActivityFunc: func(ctx context.Context, activity *types.Activity) error {
				return shared.ErrAlreadyExists
			},
		},
		Remote:  &fakeRemote{activity: recentActivity(123)},
		Weather: &fakeWeatherLookup{weather: &types.Weather{ID: "w-1"}},
		Runner:  testRunner,
		Now:     fixedNow,
	}

	got, err := cmd.Do(context.Background(), 123)
	require.NoError(t, err)
	assert.Same(t, winner, got)
}

func TestFindOrCreatePropagatesRemoteError(t *testing.T) {
	cmd := &FindOrCreateActivity{
		DB: &mocks.MockDatabase{
			GetActivityFunc: func(ctx context.Context, stravaID int64) (*types.Activity, error) {
				return nil, shared.ErrNotFound
			},
		},
		Remote: &fakeRemote{activityErr: &strava.NotAuthenticatedError{}},
		Runner: testRunner,
		Now:    fixedNow,
	}

	_, err := cmd.Do(context.Background(), 123)
	require.Error(t, err)
	var authErr *strava.NotAuthenticatedError
	assert.ErrorAs(t, err, &authErr)
}
