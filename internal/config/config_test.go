package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "OPENWEATHER_API_KEY", "API_KEY", "OPENWEATHER_BASE_URL",
		"DB_DSN", "KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_GROUP",
		"LOG_LEVEL", "ENV", "SHUTDOWN_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.WeatherURL)
	assert.Empty(t, cfg.DBDSN)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "weather_lookups", cfg.KafkaTopic)
	assert.Equal(t, "weather_auditlog", cfg.KafkaGroup)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")
	t.Setenv("ENV", "production")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoad_LegacyAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("API_KEY", "legacy")

	assert.Equal(t, "legacy", Load().APIKey)
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}
