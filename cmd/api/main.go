package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gometeo/weatherform/internal/api"
	"github.com/gometeo/weatherform/internal/api/handlers"
	"github.com/gometeo/weatherform/internal/config"
	"github.com/gometeo/weatherform/internal/country"
	"github.com/gometeo/weatherform/internal/events"
	"github.com/gometeo/weatherform/internal/logger"
	"github.com/gometeo/weatherform/internal/service"
	"github.com/gometeo/weatherform/internal/storage"
	"github.com/gometeo/weatherform/internal/web"
	"github.com/gometeo/weatherform/internal/weather"
)

// Подменяются в тестах
var (
	parseTemplates = web.Templates
	openStorage    = storage.New
	newPublisher   = func(brokers []string, topic string, log *slog.Logger) (events.Publisher, error) {
		p, err := events.NewKafkaPublisher(brokers, topic, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env)
	log.Info("Запуск Weather Form сервиса...")

	log.Info("Конфигурация загружена",
		"port", cfg.HTTPPort,
		"weather_url", cfg.WeatherURL,
		"database", cfg.DBDSN != "",
		"kafka_brokers", cfg.KafkaBrokers)

	// Шаблоны разбираем до открытия соединений
	tmpl, err := parseTemplates()
	if err != nil {
		log.Error("Ошибка разбора шаблонов", "error", err)
		return 1
	}

	checks := map[string]handlers.Pinger{}

	// 1. Справочник стран, при наличии DB_DSN дополняется из Postgres
	countries := country.Default()
	if cfg.DBDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := openStorage(ctx, cfg.DBDSN, log)
		if err != nil {
			log.Warn("Postgres недоступен, используем встроенный справочник", "error", err)
		} else {
			defer store.Close()
			checks["database"] = store
			countries = loadCountries(ctx, store, countries, log)
		}
		cancel()
	}
	log.Info("Справочник стран готов", "count", countries.Len())

	// 2. События о запросах
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := newPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("Ошибка подключения к Kafka, события отключены", "error", err)
		} else {
			publisher = kafka
			log.Info("События отправляются в Kafka", "topic", cfg.KafkaTopic)
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Ошибка при закрытии продюсера", "error", err)
		}
	}()

	// 3. Поиск погоды и HTTP
	client := weather.NewClient(cfg.WeatherURL, cfg.APIKey, countries, log)
	search := service.NewSearchService(client, publisher, log)
	// Дожидаемся фоновых отправок до закрытия продюсера
	defer search.Wait()

	weatherHandler := handlers.NewWeatherHandler(search, countries, tmpl, checks, log)
	router := api.NewRouter(weatherHandler, log)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Сервер запущен", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Ошибка сервера", "error", err)
			stopChan <- syscall.SIGTERM
		}
	}()

	<-stopChan
	log.Info("Получен сигнал завершения...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Ошибка при остановке сервера", "error", err)
	} else {
		log.Info("Сервер остановлен")
	}
	return 0
}

// loadCountries дополняет base строками из Postgres. При ошибке base
// возвращается без изменений.
func loadCountries(ctx context.Context, store *storage.CountryStorage, base *country.Table, log *slog.Logger) *country.Table {
	rows, err := store.LoadCountries(ctx)
	if err != nil {
		log.Warn("Не удалось загрузить страны из БД, используем встроенный справочник", "error", err)
		return base
	}
	if len(rows) == 0 {
		return base
	}

	log.Info("Страны загружены из БД", "count", len(rows))
	return base.With(rows)
}
