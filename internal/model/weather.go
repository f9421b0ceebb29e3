package model

import "time"

// Theme selects the page background for a weather condition.
type Theme string

const (
	ThemeSunny   Theme = "sunny"
	ThemeRainy   Theme = "rainy"
	ThemeSnowy   Theme = "snowy"
	ThemeCloudy  Theme = "cloudy"
	ThemeStormy  Theme = "stormy"
	ThemeDefault Theme = "default"
)

// Class is the CSS class used by the page template.
func (t Theme) Class() string {
	if t == "" {
		return string(ThemeDefault) + "-bg"
	}
	return string(t) + "-bg"
}

// Weather is the result of one successful lookup.
type Weather struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Theme       Theme   `json:"theme"`
}

// Country is one entry of the country selector.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LookupEvent describes the outcome of one lookup. It travels through Kafka.
type LookupEvent struct {
	ID          string    `json:"id"`
	CountryCode string    `json:"country_code"`
	City        string    `json:"city"`
	Outcome     string    `json:"outcome"`
	Theme       Theme     `json:"theme,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
