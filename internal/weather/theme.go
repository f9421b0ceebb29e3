package weather

import (
	"strings"

	"github.com/gometeo/weatherform/internal/model"
)

// ThemeFor maps an OpenWeatherMap condition group ("Clear", "Rain", ...) to a
// page theme. Unknown groups get ThemeDefault.
func ThemeFor(condition string) model.Theme {
	switch strings.ToLower(condition) {
	case "clear":
		return model.ThemeSunny
	case "rain", "drizzle":
		return model.ThemeRainy
	case "snow":
		return model.ThemeSnowy
	case "clouds":
		return model.ThemeCloudy
	case "thunderstorm":
		return model.ThemeStormy
	default:
		return model.ThemeDefault
	}
}
