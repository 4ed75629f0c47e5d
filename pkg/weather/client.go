// Package weather looks up current conditions from OpenWeatherMap and stores
// each lookup as an immutable snapshot document.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/types"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions for a coordinate pair.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
	DB      shared.Database
}

func NewClient(db shared.Database, apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    http.DefaultClient,
		DB:      db,
	}
}

// currentResponse is OpenWeatherMap's current-weather payload, trimmed to
// the fields we keep.
type currentResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
		Gust  float64 `json:"gust"`
	} `json:"wind"`
	Dt int64 `json:"dt"`
}

// FromLatLng fetches conditions at the coordinate and persists a fresh
// Weather snapshot. Snapshots are never deduplicated: every call stores a
// new document owned by whichever Activity requested it.
func (c *Client) FromLatLng(ctx context.Context, lat, lng float64) (*types.Weather, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("units", "metric")
	params.Set("appid", c.APIKey)

	endpoint := c.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	slog.Info("Fetching weather data", "latitude", lat, "longitude", lng)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var observation currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&observation); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(observation.Weather) == 0 {
		return nil, fmt.Errorf("no weather data found for coordinates: %f, %f", lat, lng)
	}

	w := &types.Weather{
		Latitude:             lat,
		Longitude:            lng,
		Timestamp:            time.Unix(observation.Dt, 0).UTC(),
		Status:               observation.Weather[0].Main,
		DetailedStatus:       capitalize(observation.Weather[0].Description),
		Temperature:          observation.Main.Temp,
		TemperatureFeelsLike: observation.Main.FeelsLike,
		Humidity:             observation.Main.Humidity,
		WindSpeed:            observation.Wind.Speed,
		WindDirection:        observation.Wind.Deg,
		WindGust:             observation.Wind.Gust,
		OtherData: map[string]interface{}{
			"weather_icon_name": observation.Weather[0].Icon,
		},
	}

	id, err := c.DB.CreateWeather(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("failed to store weather: %w", err)
	}
	w.ID = id

	return w, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	first := r[0]
	if first >= 'a' && first <= 'z' {
		first -= 'a' - 'A'
	}
	return string(first) + string(r[1:])
}
