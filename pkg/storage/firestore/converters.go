package firestore

import (
	"time"

	"github.com/runtimeexceptions/server/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get int64 from map. Firestore decodes integers as int64
// but values written through generic maps may arrive as float64.
func getInt64(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// Helper to safely get float64 from map
func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// Helper to safely get bool from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Helper to safely get time from map (handles time.Time from Firestore)
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// Helper to safely get a nested map from map
func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mm, ok := v.(map[string]interface{}); ok {
			return mm
		}
	}
	return nil
}

// --- Runner Converters ---

func RunnerToFirestore(r *types.Runner) map[string]interface{} {
	return map[string]interface{}{
		"strava_id":      r.StravaID,
		"access_token":   r.AccessToken,
		"access_expires": r.AccessExpires,
		"refresh_token":  r.RefreshToken,
		"username":       r.Username,
		"first_name":     r.FirstName,
		"last_name":      r.LastName,
		"created_at":     r.CreatedAt,
	}
}

func FirestoreToRunner(m map[string]interface{}) *types.Runner {
	return &types.Runner{
		StravaID:      getString(m, "strava_id"),
		AccessToken:   getString(m, "access_token"),
		AccessExpires: getInt64(m, "access_expires"),
		RefreshToken:  getString(m, "refresh_token"),
		Username:      getString(m, "username"),
		FirstName:     getString(m, "first_name"),
		LastName:      getString(m, "last_name"),
		CreatedAt:     getTime(m, "created_at"),
	}
}

// --- Activity Converters ---

func ActivityToFirestore(a *types.Activity) map[string]interface{} {
	return map[string]interface{}{
		"strava_id":  a.StravaID,
		"runner_id":  a.RunnerID,
		"type":       a.Type,
		"weather_id": a.WeatherID,
		"created_at": a.CreatedAt,
	}
}

func FirestoreToActivity(m map[string]interface{}) *types.Activity {
	return &types.Activity{
		StravaID:  getInt64(m, "strava_id"),
		RunnerID:  getString(m, "runner_id"),
		Type:      getString(m, "type"),
		WeatherID: getString(m, "weather_id"),
		CreatedAt: getTime(m, "created_at"),
	}
}

// --- Event Converters ---

func EventToFirestore(e *types.Event) map[string]interface{} {
	m := map[string]interface{}{
		"object_type":     e.ObjectType,
		"object_id":       e.ObjectID,
		"aspect_type":     e.AspectType,
		"owner_id":        e.OwnerID,
		"subscription_id": e.SubscriptionID,
		"event_time":      e.EventTime,
		"processed":       e.Processed,
		"created_at":      e.CreatedAt,
	}
	if len(e.Updates) > 0 {
		m["updates"] = e.Updates
	}
	return m
}

func FirestoreToEvent(m map[string]interface{}) *types.Event {
	return &types.Event{
		ObjectType:     getString(m, "object_type"),
		ObjectID:       getInt64(m, "object_id"),
		AspectType:     getString(m, "aspect_type"),
		Updates:        getMap(m, "updates"),
		OwnerID:        getString(m, "owner_id"),
		SubscriptionID: getInt64(m, "subscription_id"),
		EventTime:      getTime(m, "event_time"),
		Processed:      getBool(m, "processed"),
		CreatedAt:      getTime(m, "created_at"),
	}
}

// --- Weather Converters ---

func WeatherToFirestore(w *types.Weather) map[string]interface{} {
	m := map[string]interface{}{
		"latitude":               w.Latitude,
		"longitude":              w.Longitude,
		"timestamp":              w.Timestamp,
		"status":                 w.Status,
		"detailed_status":        w.DetailedStatus,
		"temperature":            w.Temperature,
		"temperature_feels_like": w.TemperatureFeelsLike,
		"humidity":               w.Humidity,
		"wind_speed":             w.WindSpeed,
		"wind_direction":         w.WindDirection,
		"wind_gust":              w.WindGust,
	}
	if len(w.OtherData) > 0 {
		m["other_data"] = w.OtherData
	}
	return m
}

func FirestoreToWeather(m map[string]interface{}) *types.Weather {
	return &types.Weather{
		Latitude:             getFloat(m, "latitude"),
		Longitude:            getFloat(m, "longitude"),
		Timestamp:            getTime(m, "timestamp"),
		Status:               getString(m, "status"),
		DetailedStatus:       getString(m, "detailed_status"),
		Temperature:          getFloat(m, "temperature"),
		TemperatureFeelsLike: getFloat(m, "temperature_feels_like"),
		Humidity:             getFloat(m, "humidity"),
		WindSpeed:            getFloat(m, "wind_speed"),
		WindDirection:        getFloat(m, "wind_direction"),
		WindGust:             getFloat(m, "wind_gust"),
		OtherData:            getMap(m, "other_data"),
	}
}

// --- Animal Converters ---

func AnimalToFirestore(a *types.Animal) map[string]interface{} {
	return map[string]interface{}{
		"name":      a.Name,
		"max_speed": a.MaxSpeed,
	}
}

func FirestoreToAnimal(m map[string]interface{}) *types.Animal {
	return &types.Animal{
		Name:     getString(m, "name"),
		MaxSpeed: getFloat(m, "max_speed"),
	}
}
