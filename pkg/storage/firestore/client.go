package firestore

import (
	"cloud.google.com/go/firestore"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/types"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

// Runners is keyed by the Strava account id: runners/{strava_id}
func (c *Client) Runners() *Collection[types.Runner] {
	return &Collection[types.Runner]{
		Ref:           c.fs.Collection(shared.CollectionRunners),
		ToFirestore:   RunnerToFirestore,
		FromFirestore: FirestoreToRunner,
	}
}

// Activities is keyed by the Strava activity id: activities/{strava_activity_id}.
// Keying by the external id is what makes create-if-absent the uniqueness
// anchor for idempotent enrichment.
func (c *Client) Activities() *Collection[types.Activity] {
	return &Collection[types.Activity]{
		Ref:           c.fs.Collection(shared.CollectionActivities),
		ToFirestore:   ActivityToFirestore,
		FromFirestore: FirestoreToActivity,
	}
}

// Events is keyed by a locally-generated uuid: events/{uuid}
func (c *Client) Events() *Collection[types.Event] {
	return &Collection[types.Event]{
		Ref:           c.fs.Collection(shared.CollectionEvents),
		ToFirestore:   EventToFirestore,
		FromFirestore: FirestoreToEvent,
	}
}

// Weather snapshots use auto-generated document ids.
func (c *Client) Weather() *Collection[types.Weather] {
	return &Collection[types.Weather]{
		Ref:           c.fs.Collection(shared.CollectionWeather),
		ToFirestore:   WeatherToFirestore,
		FromFirestore: FirestoreToWeather,
	}
}

// Animals is keyed by animal name: animals/{name}
func (c *Client) Animals() *Collection[types.Animal] {
	return &Collection[types.Animal]{
		Ref:           c.fs.Collection(shared.CollectionAnimals),
		ToFirestore:   AnimalToFirestore,
		FromFirestore: FirestoreToAnimal,
	}
}
