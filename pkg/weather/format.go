package weather

import (
	"fmt"
	"math"
	"strconv"

	"github.com/runtimeexceptions/server/pkg/types"
)

// Weather-status emojis, keyed off OpenWeatherMap's two-digit icon prefix.
const (
	EmojiClearSky        = "\U0001f323"
	EmojiFewClouds       = "\U0001f324"
	EmojiScatteredClouds = "\U0001f325"
	EmojiBrokenClouds    = "☁"
	EmojiShowerRain      = "\U0001f326"
	EmojiRain            = "\U0001f327"
	EmojiThunderstorm    = "\U0001f329"
	EmojiSnow            = "\U0001f328"
	EmojiMist            = "\U0001f32b"
)

// Short returns a one-line summary, e.g. "Rain 8.0°C".
func Short(w *types.Weather) string {
	return fmt.Sprintf("%s %v°C", w.Status, w.Temperature)
}

// Long returns the full multi-field description merged into activity
// descriptions.
func Long(w *types.Weather) string {
	return fmt.Sprintf("%s, %s, %s, %s",
		w.DetailedStatus, TemperatureCelsius(w), HumidityPercentage(w), Wind(w))
}

// TemperatureCelsius returns the temperature with its feels-like value.
func TemperatureCelsius(w *types.Weather) string {
	return fmt.Sprintf("%.1f°C feels like %.1f°C", w.Temperature, w.TemperatureFeelsLike)
}

// HumidityPercentage returns the humidity as a percentage.
func HumidityPercentage(w *types.Weather) string {
	return fmt.Sprintf("Humidity %.0f%%", w.Humidity)
}

// Wind returns the wind speed, cardinal direction and gust speed.
func Wind(w *types.Weather) string {
	speed := MpsToKph(w.WindSpeed)
	direction := DegreesToCardinal(w.WindDirection)
	gusts := MpsToKph(w.WindGust)
	return fmt.Sprintf("Wind %.1fkm/h from %s, gusting up to %.1fkm/h", speed, direction, gusts)
}

// DegreesToCardinal converts degrees to an eight-point cardinal direction.
// Sector boundaries round half-to-even, so 292.5 is "W" and 337.5 is "N".
func DegreesToCardinal(d float64) string {
	dirs := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	ix := int(math.RoundToEven(d/(360.0/float64(len(dirs))))) % len(dirs)
	if ix < 0 {
		ix += len(dirs)
	}
	return dirs[ix]
}

// MpsToKph converts meters per second to kilometers per hour.
func MpsToKph(metersPerSecond float64) float64 {
	return metersPerSecond * 3.6
}

// Emoji maps the stored icon code's two-digit prefix to a weather emoji.
// Unknown codes map to the empty string.
func Emoji(w *types.Weather) string {
	icon, _ := w.OtherData["weather_icon_name"].(string)
	if len(icon) < 2 {
		return ""
	}
	id, err := strconv.Atoi(icon[:2])
	if err != nil {
		return ""
	}

	switch id {
	case 1:
		return EmojiClearSky
	case 2:
		return EmojiFewClouds
	case 3:
		return EmojiScatteredClouds
	case 4:
		return EmojiBrokenClouds
	case 9:
		return EmojiShowerRain
	case 10:
		return EmojiRain
	case 11:
		return EmojiThunderstorm
	case 13:
		return EmojiSnow
	case 50:
		return EmojiMist
	default:
		return ""
	}
}
