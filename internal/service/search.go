package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gometeo/weatherform/internal/model"
	"github.com/gometeo/weatherform/internal/textnorm"
	"github.com/gometeo/weatherform/internal/weather"
)

const (
	outcomeOK = "ok"

	// DefaultPublishTimeout ограничивает отправку одного события.
	DefaultPublishTimeout = 5 * time.Second
)

type WeatherLookup interface {
	Lookup(ctx context.Context, countryCode, cityName string) (*model.Weather, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.LookupEvent) error
}

// SearchService turns a raw form submission into a lookup.
type SearchService struct {
	lookup         WeatherLookup
	events         EventPublisher
	logger         *slog.Logger
	now            func() time.Time
	publishTimeout time.Duration

	// незавершённые отправки событий
	pending sync.WaitGroup
}

func NewSearchService(lookup WeatherLookup, events EventPublisher, logger *slog.Logger) *SearchService {
	return &SearchService{
		lookup:         lookup,
		events:         events,
		logger:         logger.With("component", "search_service"),
		now:            time.Now,
		publishTimeout: DefaultPublishTimeout,
	}
}

// Search trims the inputs, strips diacritics from the city and runs the
// lookup. Errors are always *weather.LookupError. The lookup event is sent
// in the background and never delays the result.
func (s *SearchService) Search(ctx context.Context, countryRaw, cityRaw string) (*model.Weather, error) {
	countryCode := strings.TrimSpace(countryRaw)
	city := textnorm.Normalize(strings.TrimSpace(cityRaw))

	if countryCode == "" || city == "" {
		return nil, weather.ValidationError()
	}

	start := s.now()
	result, err := s.lookup.Lookup(ctx, countryCode, city)
	if err != nil {
		s.logger.Info("Запрос погоды не удался",
			"country", countryCode,
			"city", city,
			"kind", weather.KindOf(err).String(),
			"duration_ms", s.now().Sub(start).Milliseconds())
		s.publish(ctx, countryCode, city, nil, err)
		return nil, err
	}

	s.logger.Info("Погода получена",
		"country", countryCode,
		"city", city,
		"theme", string(result.Theme),
		"duration_ms", s.now().Sub(start).Milliseconds())
	s.publish(ctx, countryCode, city, result, nil)
	return result, nil
}

// Wait blocks until every background publish has finished. Call it before
// closing the publisher.
func (s *SearchService) Wait() {
	s.pending.Wait()
}

func (s *SearchService) publish(ctx context.Context, countryCode, city string, result *model.Weather, lookupErr error) {
	event := model.LookupEvent{
		ID:          uuid.NewString(),
		CountryCode: countryCode,
		City:        city,
		Outcome:     outcomeOK,
		Timestamp:   s.now().UTC(),
	}
	if lookupErr != nil {
		event.Outcome = weather.KindOf(lookupErr).String()
	}
	if result != nil {
		temp := result.Temperature
		event.Theme = result.Theme
		event.Temperature = &temp
	}

	// Запрос может завершиться раньше отправки, поэтому отмену не наследуем.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()

		if err := s.events.Publish(pubCtx, event); err != nil {
			s.logger.Warn("Не удалось отправить событие", "id", event.ID, "error", err)
		}
	}()
}
