package database

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/runtimeexceptions/server/pkg"
	storage "github.com/runtimeexceptions/server/pkg/storage/firestore"
	"github.com/runtimeexceptions/server/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore
// It wraps our typed storage client
type FirestoreAdapter struct {
	Client  *firestore.Client
	storage *storage.Client // internal typed wrapper
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{
		Client:  client,
		storage: storage.NewClient(client),
	}
}

// translateError maps the server's status codes onto the shared sentinels so
// callers never see grpc in their error checks.
func translateError(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return shared.ErrNotFound
	case codes.AlreadyExists:
		return shared.ErrAlreadyExists
	}
	return err
}

func activityDocID(stravaID int64) string {
	return strconv.FormatInt(stravaID, 10)
}

func (a *FirestoreAdapter) GetRunner(ctx context.Context, stravaID string) (*types.Runner, error) {
	runner, err := a.storage.Runners().Doc(stravaID).Get(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return runner, nil
}

func (a *FirestoreAdapter) UpsertRunner(ctx context.Context, runner *types.Runner) error {
	return translateError(a.storage.Runners().Doc(runner.StravaID).Set(ctx, runner))
}

func (a *FirestoreAdapter) UpdateRunner(ctx context.Context, stravaID string, data map[string]interface{}) error {
	return translateError(a.storage.Runners().Doc(stravaID).Update(ctx, data))
}

func (a *FirestoreAdapter) GetActivity(ctx context.Context, stravaID int64) (*types.Activity, error) {
	activity, err := a.storage.Activities().Doc(activityDocID(stravaID)).Get(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return activity, nil
}

func (a *FirestoreAdapter) CreateActivity(ctx context.Context, activity *types.Activity) error {
	return translateError(a.storage.Activities().Doc(activityDocID(activity.StravaID)).Create(ctx, activity))
}

func (a *FirestoreAdapter) CreateEvent(ctx context.Context, e *types.Event) error {
	return translateError(a.storage.Events().Doc(e.ID).Create(ctx, e))
}

func (a *FirestoreAdapter) MarkEventProcessed(ctx context.Context, id string) error {
	return translateError(a.storage.Events().Doc(id).Update(ctx, map[string]interface{}{
		"processed": true,
	}))
}

func (a *FirestoreAdapter) CreateWeather(ctx context.Context, w *types.Weather) (string, error) {
	doc := a.storage.Weather().NewDoc()
	if err := doc.Create(ctx, w); err != nil {
		return "", translateError(err)
	}
	return doc.ID(), nil
}

func (a *FirestoreAdapter) GetWeather(ctx context.Context, id string) (*types.Weather, error) {
	w, err := a.storage.Weather().Doc(id).Get(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	w.ID = id
	return w, nil
}

func (a *FirestoreAdapter) ListAnimals(ctx context.Context) ([]*types.Animal, error) {
	animals, err := a.storage.Animals().List(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return animals, nil
}

func (a *FirestoreAdapter) SetAnimal(ctx context.Context, animal *types.Animal) error {
	return translateError(a.storage.Animals().Doc(animal.Name).Set(ctx, animal))
}
