package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runtimeexceptions/server/pkg/testing/mocks"
	"github.com/runtimeexceptions/server/pkg/types"
)

func snapshotWithIcon(icon string) *types.Weather {
	return &types.Weather{
		OtherData: map[string]interface{}{"weather_icon_name": icon},
	}
}

func TestEmoji(t *testing.T) {
	tests := []struct {
		icon     string
		expected string
	}{
		{"01d", EmojiClearSky},
		{"02n", EmojiFewClouds},
		{"03d", EmojiScatteredClouds},
		{"04d", EmojiBrokenClouds},
		{"09d", EmojiShowerRain},
		{"10n", EmojiRain},
		{"11d", EmojiThunderstorm},
		{"13d", EmojiSnow},
		{"50d", EmojiMist},
		{"99x", ""},
		{"", ""},
		{"xx", ""},
	}

	for _, tt := range tests {
		t.Run("icon "+tt.icon, func(t *testing.T) {
			assert.Equal(t, tt.expected, Emoji(snapshotWithIcon(tt.icon)))
		})
	}
}

func TestDegreesToCardinal(t *testing.T) {
	tests := []struct {
		degrees  float64
		expected string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{293, "NW"},
		{359, "N"},
		// Sector boundaries resolve half-to-even.
		{292.5, "W"},
		{337.5, "N"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DegreesToCardinal(tt.degrees), "degrees %v", tt.degrees)
	}
}

func TestShort(t *testing.T) {
	w := &types.Weather{Status: "Rain", Temperature: 8.5}
	assert.Equal(t, "Rain 8.5°C", Short(w))
}

func TestLong(t *testing.T) {
	w := &types.Weather{
		Status:               "Rain",
		DetailedStatus:       "Light rain",
		Temperature:          8.25,
		TemperatureFeelsLike: 6.1,
		Humidity:             87,
		WindSpeed:            5,
		WindDirection:        90,
		WindGust:             10,
	}

	long := Long(w)
	assert.Equal(t, "Light rain, 8.2°C feels like 6.1°C, Humidity 87%, Wind 18.0km/h from E, gusting up to 36.0km/h", long)
}

func TestFromLatLng(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "51.5", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.1", r.URL.Query().Get("lon"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"weather": []map[string]interface{}{
				{"main": "Rain", "description": "light rain", "icon": "10d"},
			},
			"main": map[string]interface{}{"temp": 8.5, "feels_like": 6.0, "humidity": 87},
			"wind": map[string]interface{}{"speed": 5.0, "deg": 90.0, "gust": 10.0},
			"dt":   1620000000,
		})
	}))
	defer server.Close()

	var stored *types.Weather
	db := &mocks.MockDatabase{
		CreateWeatherFunc: func(ctx context.Context, w *types.Weather) (string, error) {
			stored = w
			return "w-1", nil
		},
	}

	client := NewClient(db, "api-key")
	client.BaseURL = server.URL
	client.HTTP = server.Client()

	w, err := client.FromLatLng(context.Background(), 51.5, -0.1)
	require.NoError(t, err)
	assert.Equal(t, "w-1", w.ID)
	assert.Equal(t, "Rain", w.Status)
	assert.Equal(t, "Light rain", w.DetailedStatus)
	assert.Equal(t, 8.5, w.Temperature)
	assert.Equal(t, EmojiRain, Emoji(w))

	require.NotNil(t, stored)
	assert.Equal(t, 51.5, stored.Latitude)
}

func TestFromLatLngNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather": []}`))
	}))
	defer server.Close()

	client := NewClient(&mocks.MockDatabase{}, "api-key")
	client.BaseURL = server.URL
	client.HTTP = server.Client()

	_, err := client.FromLatLng(context.Background(), 1.0, 2.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no weather data found")
}
