// Package weather looks up current conditions on OpenWeatherMap and turns the
// response into a page-ready result or a categorized error.
package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gometeo/weatherform/internal/model"
	"github.com/gometeo/weatherform/internal/textnorm"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultTimeout = 5 * time.Second

	maxBodySize = 1 << 20
)

// CountryNamer resolves an alpha-2 code to a display name.
type CountryNamer interface {
	DisplayName(code string) string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	countries  CountryNamer
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has DefaultTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL, apiKey string, countries CountryNamer, logger *slog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		countries:  countries,
		logger:     logger.With("component", "openweather_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiResponse struct {
	Cod     statusCode `json:"cod"`
	Message any        `json:"message"`
	Main    *struct {
		Temp     float64 `json:"temp"`
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// statusCode is the "cod" field, which the API sends as a number or a string
// depending on the endpoint and the outcome.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*s = 0
		return nil
	}
	*s = statusCode(n)
	return nil
}

// Lookup fetches the current weather for cityName in countryCode. Any
// failure is returned as a *LookupError.
func (c *Client) Lookup(ctx context.Context, countryCode, cityName string) (*model.Weather, error) {
	query := url.Values{}
	query.Set("q", cityName+","+countryCode)
	query.Set("units", "metric")
	query.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, unknownAPIError("", fmt.Errorf("ошибка создания запроса: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Сервис погоды недоступен", "city", cityName, "country", countryCode, "error", err)
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.logger.Warn("Ошибка чтения ответа сервиса погоды", "city", cityName, "error", err)
		return nil, networkError(err)
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("Ошибка разбора ответа сервиса погоды",
			"city", cityName,
			"http_status", resp.StatusCode,
			"error", err)
		return nil, unknownAPIError("", fmt.Errorf("ошибка десериализации: %w", err))
	}

	c.logger.Debug("Ответ сервиса погоды получен",
		"city", cityName,
		"country", countryCode,
		"http_status", resp.StatusCode,
		"cod", int(payload.Cod))

	switch payload.Cod {
	case http.StatusOK:
		return c.toWeather(countryCode, cityName, &payload)
	case http.StatusNotFound:
		return nil, cityNotFoundError(cityName)
	case http.StatusUnauthorized:
		c.logger.Error("Сервис погоды отклонил API ключ")
		return nil, invalidAPIKeyError()
	default:
		message, _ := payload.Message.(string)
		return nil, unknownAPIError(message, fmt.Errorf("сервис погоды вернул cod %d", int(payload.Cod)))
	}
}

func (c *Client) toWeather(countryCode, cityName string, payload *apiResponse) (*model.Weather, error) {
	if payload.Main == nil || len(payload.Weather) == 0 {
		return nil, unknownAPIError("", fmt.Errorf("неполный ответ о погоде для %s", cityName))
	}

	condition := payload.Weather[0]

	return &model.Weather{
		City:        cityName,
		Country:     c.countries.DisplayName(countryCode),
		Temperature: payload.Main.Temp,
		Pressure:    payload.Main.Pressure,
		Humidity:    payload.Main.Humidity,
		Description: textnorm.Title(condition.Description),
		Icon:        condition.Icon,
		Theme:       ThemeFor(condition.Main),
	}, nil
}
