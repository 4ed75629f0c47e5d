package shared

import (
	"context"
	"errors"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/runtimeexceptions/server/pkg/types"
)

// Sentinel errors every Database implementation maps its store's failures
// onto, so callers can branch without knowing the backend.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// --- Persistence Interfaces ---

type Database interface {
	// Runners
	GetRunner(ctx context.Context, stravaID string) (*types.Runner, error)
	UpsertRunner(ctx context.Context, runner *types.Runner) error
	// UpdateRunner applies a partial field update. The token refresh path
	// writes access_token, access_expires and refresh_token in one call.
	UpdateRunner(ctx context.Context, stravaID string, data map[string]interface{}) error

	// Activities
	GetActivity(ctx context.Context, stravaID int64) (*types.Activity, error)
	// CreateActivity fails with an already-exists error when the document
	// is present; callers re-read instead of overwriting.
	CreateActivity(ctx context.Context, activity *types.Activity) error

	// Events
	CreateEvent(ctx context.Context, e *types.Event) error
	MarkEventProcessed(ctx context.Context, id string) error

	// Weather
	CreateWeather(ctx context.Context, w *types.Weather) (string, error)
	GetWeather(ctx context.Context, id string) (*types.Weather, error)

	// Animals
	ListAnimals(ctx context.Context) ([]*types.Animal, error)
	SetAnimal(ctx context.Context, animal *types.Animal) error
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}
