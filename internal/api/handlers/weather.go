package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gometeo/weatherform/internal/model"
	"github.com/gometeo/weatherform/internal/web"
	"github.com/gometeo/weatherform/internal/weather"
)

type Searcher interface {
	Search(ctx context.Context, countryRaw, cityRaw string) (*model.Weather, error)
}

type CountryLister interface {
	Sorted() []model.Country
}

// Pinger is an optional dependency reported by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type WeatherHandler struct {
	search    Searcher
	countries []model.Country
	tmpl      *template.Template
	checks    map[string]Pinger
	logger    *slog.Logger
}

func NewWeatherHandler(search Searcher, countries CountryLister, tmpl *template.Template, checks map[string]Pinger, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{
		search:    search,
		countries: countries.Sorted(),
		tmpl:      tmpl,
		checks:    checks,
		logger:    logger.With("component", "weather_handler"),
	}
}

// Index renders the empty form.
func (h *WeatherHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, web.Page{Countries: h.countries})
}

// Search handles the form submission and renders the result or the error
// message. Lookup errors are part of the page, not HTTP errors.
func (h *WeatherHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("Некорректная форма", "error", err)
		h.render(w, web.Page{Countries: h.countries, Error: weather.ValidationError().Message})
		return
	}

	countryCode := firstValue(r, "countryCode", "country")
	city := firstValue(r, "cityName", "city")

	page := web.Page{
		Countries:       h.countries,
		SelectedCountry: countryCode,
		City:            city,
	}

	result, err := h.search.Search(r.Context(), countryCode, city)
	if err != nil {
		page.Error = weather.UserMessage(err)
	} else {
		page.Weather = result
	}

	h.render(w, page)
}

// HealthCheck reports the state of the optional dependencies.
func (h *WeatherHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	health := map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			health[name] = "unhealthy"
			health["status"] = "degraded"
			h.logger.Error("Проверка зависимости не прошла", "dependency", name, "error", err)
		} else {
			health[name] = "healthy"
		}
	}

	status := http.StatusOK
	if health["status"] == "degraded" {
		status = http.StatusServiceUnavailable
	}

	sendJSON(w, status, health)
}

func (h *WeatherHandler) render(w http.ResponseWriter, page web.Page) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		h.logger.Error("Ошибка отрисовки страницы", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func firstValue(r *http.Request, keys ...string) string {
	for _, key := range keys {
		if v := r.PostFormValue(key); v != "" {
			return v
		}
	}
	return ""
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
