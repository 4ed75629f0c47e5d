package strava

import (
	"encoding/json"
	"fmt"
	"time"
)

// LatLng is Strava's two-element coordinate pair. The API sends an empty
// array instead of null for activities without GPS, so decoding cleans that
// up to nil. Any other element count is a schema violation, not a coordinate.
type LatLng []float64

func (l *LatLng) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	if len(raw) != 2 {
		return fmt.Errorf("latlng must have exactly 2 elements, got %d", len(raw))
	}
	*l = raw
	return nil
}

func (l LatLng) Lat() float64 { return l[0] }
func (l LatLng) Lng() float64 { return l[1] }

// DetailedActivity is the subset of Strava's detailed activity representation
// the enrichment pipeline reads.
type DetailedActivity struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	Distance     float64   `json:"distance"`
	AverageSpeed float64   `json:"average_speed"` // m/s
	ElapsedTime  int64     `json:"elapsed_time"`  // seconds
	StartDate    time.Time `json:"start_date"`
	Timezone     string    `json:"timezone"`
	StartLatLng  LatLng    `json:"start_latlng"`
	EndLatLng    LatLng    `json:"end_latlng"`
}

// UpdatableActivity is the partial PUT body for activity updates. Only
// non-nil fields are sent, so untouched remote fields stay untouched.
type UpdatableActivity struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SummaryAthlete is the athlete representation embedded in the OAuth token
// response.
type SummaryAthlete struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// TokenResponse is Strava's OAuth token endpoint response, for both the
// authorization-code exchange and the refresh exchange.
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    int64           `json:"expires_at"`
	Athlete      *SummaryAthlete `json:"athlete,omitempty"`
}

// Subscription is one push-subscription as returned by the management
// endpoints.
type Subscription struct {
	ID          int64  `json:"id"`
	CallbackURL string `json:"callback_url"`
}
