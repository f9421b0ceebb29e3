package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gometeo/weatherform/internal/model"
	"github.com/gometeo/weatherform/internal/weather"
)

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) Lookup(ctx context.Context, countryCode, cityName string) (*model.Weather, error) {
	args := m.Called(ctx, countryCode, cityName)
	if w := args.Get(0); w != nil {
		return w.(*model.Weather), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event model.LookupEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newService(lookup WeatherLookup, events EventPublisher) *SearchService {
	return NewSearchService(lookup, events, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSearch_Success(t *testing.T) {
	lookup := new(mockLookup)
	events := new(mockPublisher)
	result := &model.Weather{City: "Sao Paulo", Country: "Brazil", Temperature: 28, Theme: model.ThemeSunny}

	lookup.On("Lookup", mock.Anything, "BR", "Sao Paulo").Return(result, nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.LookupEvent) bool {
		_, err := uuid.Parse(e.ID)
		return err == nil &&
			e.Outcome == "ok" &&
			e.City == "Sao Paulo" &&
			e.Theme == model.ThemeSunny &&
			e.Temperature != nil && *e.Temperature == 28
	})).Return(nil)

	svc := newService(lookup, events)
	got, err := svc.Search(context.Background(), "  BR ", " São Paulo ")
	svc.Wait()

	require.NoError(t, err)
	assert.Same(t, result, got)
	lookup.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestSearch_Validation(t *testing.T) {
	tests := []struct {
		name    string
		country string
		city    string
	}{
		{"missing country", "", "Paris"},
		{"blank country", "   ", "Paris"},
		{"missing city", "FR", ""},
		{"blank city", "FR", "  \t"},
		{"city of marks only", "FR", "\u0301"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := new(mockLookup)
			events := new(mockPublisher)

			_, err := newService(lookup, events).Search(context.Background(), tt.country, tt.city)

			assert.Equal(t, weather.KindValidation, weather.KindOf(err))
			assert.Equal(t, "Please select a country and enter a city name.", err.Error())
			lookup.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
			events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestSearch_LookupErrorIsPublishedAndReturned(t *testing.T) {
	lookup := new(mockLookup)
	events := new(mockPublisher)
	lookupErr := &weather.LookupError{Kind: weather.KindCityNotFound, Message: "Could not find the city “Atlantis” in that country. Check the spelling."}

	lookup.On("Lookup", mock.Anything, "GR", "Atlantis").Return(nil, lookupErr)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.LookupEvent) bool {
		return e.Outcome == "city_not_found" && e.Temperature == nil && e.Theme == ""
	})).Return(nil)

	svc := newService(lookup, events)
	got, err := svc.Search(context.Background(), "GR", "Atlantis")
	svc.Wait()

	assert.Nil(t, got)
	assert.Same(t, lookupErr, err)
	events.AssertExpectations(t)
}

func TestSearch_PublishFailureDoesNotAffectResult(t *testing.T) {
	lookup := new(mockLookup)
	events := new(mockPublisher)
	result := &model.Weather{City: "Paris", Country: "France"}

	lookup.On("Lookup", mock.Anything, "FR", "Paris").Return(result, nil)
	events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("kafka down"))

	svc := newService(lookup, events)
	got, err := svc.Search(context.Background(), "FR", "Paris")
	svc.Wait()

	require.NoError(t, err)
	assert.Equal(t, "Paris", got.City)
	events.AssertExpectations(t)
}

// blockingPublisher ignores its context and holds Publish until released.
type blockingPublisher struct {
	started  chan struct{}
	release  chan struct{}
	deadline chan bool
}

func (p *blockingPublisher) Publish(ctx context.Context, _ model.LookupEvent) error {
	_, ok := ctx.Deadline()
	p.deadline <- ok
	close(p.started)
	<-p.release
	return nil
}

func TestSearch_StuckPublisherDoesNotDelayResult(t *testing.T) {
	lookup := new(mockLookup)
	lookup.On("Lookup", mock.Anything, "FR", "Paris").Return(&model.Weather{City: "Paris"}, nil)

	events := &blockingPublisher{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		deadline: make(chan bool, 1),
	}
	svc := newService(lookup, events)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	got, err := svc.Search(ctx, "FR", "Paris")
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "Paris", got.City)
	assert.Less(t, elapsed, 100*time.Millisecond)

	<-events.started
	assert.True(t, <-events.deadline, "publish must run with a deadline")

	close(events.release)
	svc.Wait()
}

func TestSearch_PublishOutlivesRequestContext(t *testing.T) {
	lookup := new(mockLookup)
	lookup.On("Lookup", mock.Anything, "FR", "Paris").Return(&model.Weather{City: "Paris"}, nil)

	events := new(mockPublisher)
	events.On("Publish", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil)

	svc := newService(lookup, events)
	svc.publishTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.Search(ctx, "FR", "Paris")
	cancel()
	svc.Wait()

	require.NoError(t, err)
	events.AssertExpectations(t)
}
