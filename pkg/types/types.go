// Package types holds the persisted domain records shared across services.
package types

import "time"

// Activity type values as Strava reports them.
const (
	ActivityTypeRun  = "Run"
	ActivityTypeRide = "Ride"
	ActivityTypeWalk = "Walk"
	ActivityTypeSwim = "Swim"
)

// Runner is the local identity bound 1:1 to a Strava account.
// The credential triple (access token, expiry, refresh token) is always
// written together.
type Runner struct {
	StravaID      string
	AccessToken   string
	AccessExpires int64 // unix epoch seconds
	RefreshToken  string
	Username      string
	FirstName     string
	LastName      string
	CreatedAt     time.Time
}

// Activity is the local cache of a remote activity plus derived data.
// The Firestore document ID is the Strava activity ID, which makes
// create-if-absent the uniqueness anchor for idempotent enrichment.
type Activity struct {
	StravaID  int64
	RunnerID  string
	Type      string
	WeatherID string // empty when no weather was attached
	CreatedAt time.Time
}

// Event is the durable record of one webhook notification. Immutable once
// created; only Processed may be set afterwards.
type Event struct {
	ID             string
	ObjectType     string
	ObjectID       int64
	AspectType     string
	Updates        map[string]interface{}
	OwnerID        string // Runner.StravaID
	SubscriptionID int64
	EventTime      time.Time
	Processed      bool
	CreatedAt      time.Time
}

// Weather is an immutable snapshot of conditions at a place and time.
type Weather struct {
	ID                   string
	Latitude             float64
	Longitude            float64
	Timestamp            time.Time
	Status               string
	DetailedStatus       string
	Temperature          float64
	TemperatureFeelsLike float64
	Humidity             float64
	WindSpeed            float64
	WindDirection        float64
	WindGust             float64
	OtherData            map[string]interface{}
}

// Animal is one row of the reference table used by the comparison command.
// MaxSpeed is in km/h.
type Animal struct {
	Name     string
	MaxSpeed float64
}

// EnrichmentJob is the payload carried by every enrichment task. Jobs are
// independent and individually safe to retry.
type EnrichmentJob struct {
	RunnerID   string `json:"runner_id"`
	ActivityID int64  `json:"activity_id"`
	EventID    string `json:"event_id,omitempty"`
}
