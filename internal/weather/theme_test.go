package weather

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gometeo/weatherform/internal/model"
)

func TestThemeFor(t *testing.T) {
	tests := map[string]model.Theme{
		"Clear":        model.ThemeSunny,
		"clear":        model.ThemeSunny,
		"Rain":         model.ThemeRainy,
		"DRIZZLE":      model.ThemeRainy,
		"Snow":         model.ThemeSnowy,
		"Clouds":       model.ThemeCloudy,
		"Thunderstorm": model.ThemeStormy,
		"Mist":         model.ThemeDefault,
		"Tornado":      model.ThemeDefault,
		"":             model.ThemeDefault,
		" clear":       model.ThemeDefault,
	}

	for condition, want := range tests {
		assert.Equal(t, want, ThemeFor(condition), "condition %q", condition)
	}
}

func TestThemeClass(t *testing.T) {
	assert.Equal(t, "sunny-bg", model.ThemeSunny.Class())
	assert.Equal(t, "default-bg", model.Theme("").Class())
}

func TestKindOfAndUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("search: %w", cityNotFoundError("Atlantis"))

	assert.Equal(t, KindCityNotFound, KindOf(wrapped))
	assert.Equal(t, "Could not find the city “Atlantis” in that country. Check the spelling.", UserMessage(wrapped))

	plain := errors.New("pq: connection reset")
	assert.Equal(t, KindUnknown, KindOf(plain))
	assert.Equal(t, msgFallback, UserMessage(plain))

	assert.Equal(t, "city_not_found", KindCityNotFound.String())
	assert.Equal(t, "validation_error", ValidationError().Kind.String())
}
