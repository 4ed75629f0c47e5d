package mocks

import (
	"context"
	"fmt"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/runtimeexceptions/server/pkg/types"
)

// --- Mock Database ---

type MockDatabase struct {
	GetRunnerFunc          func(ctx context.Context, stravaID string) (*types.Runner, error)
	UpsertRunnerFunc       func(ctx context.Context, runner *types.Runner) error
	UpdateRunnerFunc       func(ctx context.Context, stravaID string, data map[string]interface{}) error
	GetActivityFunc        func(ctx context.Context, stravaID int64) (*types.Activity, error)
	CreateActivityFunc     func(ctx context.Context, activity *types.Activity) error
	CreateEventFunc        func(ctx context.Context, e *types.Event) error
	MarkEventProcessedFunc func(ctx context.Context, id string) error
	CreateWeatherFunc      func(ctx context.Context, w *types.Weather) (string, error)
	GetWeatherFunc         func(ctx context.Context, id string) (*types.Weather, error)
	ListAnimalsFunc        func(ctx context.Context) ([]*types.Animal, error)
	SetAnimalFunc          func(ctx context.Context, animal *types.Animal) error
}

func (m *MockDatabase) GetRunner(ctx context.Context, stravaID string) (*types.Runner, error) {
	if m.GetRunnerFunc != nil {
		return m.GetRunnerFunc(ctx, stravaID)
	}
	return nil, fmt.Errorf("runner not found")
}

func (m *MockDatabase) UpsertRunner(ctx context.Context, runner *types.Runner) error {
	if m.UpsertRunnerFunc != nil {
		return m.UpsertRunnerFunc(ctx, runner)
	}
	return nil
}

func (m *MockDatabase) UpdateRunner(ctx context.Context, stravaID string, data map[string]interface{}) error {
	if m.UpdateRunnerFunc != nil {
		return m.UpdateRunnerFunc(ctx, stravaID, data)
	}
	return nil
}

func (m *MockDatabase) GetActivity(ctx context.Context, stravaID int64) (*types.Activity, error) {
	if m.GetActivityFunc != nil {
		return m.GetActivityFunc(ctx, stravaID)
	}
	return nil, fmt.Errorf("activity not found")
}

func (m *MockDatabase) CreateActivity(ctx context.Context, activity *types.Activity) error {
	if m.CreateActivityFunc != nil {
		return m.CreateActivityFunc(ctx, activity)
	}
	return nil
}

func (m *MockDatabase) CreateEvent(ctx context.Context, e *types.Event) error {
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, e)
	}
	return nil
}

func (m *MockDatabase) MarkEventProcessed(ctx context.Context, id string) error {
	if m.MarkEventProcessedFunc != nil {
		return m.MarkEventProcessedFunc(ctx, id)
	}
	return nil
}

func (m *MockDatabase) CreateWeather(ctx context.Context, w *types.Weather) (string, error) {
	if m.CreateWeatherFunc != nil {
		return m.CreateWeatherFunc(ctx, w)
	}
	return "weather-id", nil
}

func (m *MockDatabase) GetWeather(ctx context.Context, id string) (*types.Weather, error) {
	if m.GetWeatherFunc != nil {
		return m.GetWeatherFunc(ctx, id)
	}
	return nil, fmt.Errorf("weather not found")
}

func (m *MockDatabase) ListAnimals(ctx context.Context) ([]*types.Animal, error) {
	if m.ListAnimalsFunc != nil {
		return m.ListAnimalsFunc(ctx)
	}
	return nil, nil
}

func (m *MockDatabase) SetAnimal(ctx context.Context, animal *types.Animal) error {
	if m.SetAnimalFunc != nil {
		return m.SetAnimalFunc(ctx, animal)
	}
	return nil
}

// --- Mock Publisher ---

type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)

	// Published records every call for assertion convenience.
	Published []PublishedEvent
}

type PublishedEvent struct {
	Topic string
	Event event.Event
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	m.Published = append(m.Published, PublishedEvent{Topic: topic, Event: e})
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}
