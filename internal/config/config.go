package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

type Config struct {
	HTTPPort        string
	APIKey          string
	WeatherURL      string
	DBDSN           string
	KafkaBrokers    []string
	KafkaTopic      string
	KafkaGroup      string
	LogLevel        string
	Env             string
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		APIKey:       getEnv("OPENWEATHER_API_KEY", os.Getenv("API_KEY")),
		WeatherURL:   getEnv("OPENWEATHER_BASE_URL", defaultWeatherURL),
		DBDSN:        getEnv("DB_DSN", ""),
		KafkaBrokers: getEnvSlice("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "weather_lookups"),
		KafkaGroup:   getEnv("KAFKA_GROUP", "weather_auditlog"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Env:          getEnv("ENV", "development"),

		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
