// Package webhook implements the push-event endpoint: the subscription
// verification handshake, event validation and persistence, and the fan-out
// of enrichment jobs.
package webhook

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultVerifyToken is the shared token echoed by the provider during the
// subscription handshake.
const DefaultVerifyToken = "STRAVA"

var (
	validObjectTypes = map[string]bool{"activity": true, "athlete": true}
	validAspectTypes = map[string]bool{"create": true, "update": true, "delete": true}
)

// FlexID is a numeric identifier the provider sends sometimes as a JSON
// number and sometimes as a string. Both decode to the canonical string form.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return fmt.Errorf("not a numeric id: %q", s)
		}
		*f = FlexID(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(strconv.FormatInt(n, 10))
	return nil
}

// EventWebhook is the provider's push-event payload.
type EventWebhook struct {
	ObjectType     string                 `json:"object_type"`
	ObjectID       int64                  `json:"object_id"`
	AspectType     string                 `json:"aspect_type"`
	Updates        map[string]interface{} `json:"updates"`
	OwnerID        FlexID                 `json:"owner_id"`
	SubscriptionID int64                  `json:"subscription_id"`
	EventTime      int64                  `json:"event_time"`
}

// Validate enforces the fixed event schema. Payloads outside it are rejected
// before anything is persisted.
func (e *EventWebhook) Validate() error {
	if !validObjectTypes[e.ObjectType] {
		return fmt.Errorf("invalid object_type: %q", e.ObjectType)
	}
	if !validAspectTypes[e.AspectType] {
		return fmt.Errorf("invalid aspect_type: %q", e.AspectType)
	}
	if e.ObjectID == 0 {
		return fmt.Errorf("missing object_id")
	}
	if e.OwnerID == "" {
		return fmt.Errorf("missing owner_id")
	}
	if e.SubscriptionID == 0 {
		return fmt.Errorf("missing subscription_id")
	}
	if e.EventTime == 0 {
		return fmt.Errorf("missing event_time")
	}
	return nil
}
