package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gometeo/weatherform/internal/config"
	"github.com/gometeo/weatherform/internal/country"
	"github.com/gometeo/weatherform/internal/events"
	"github.com/gometeo/weatherform/internal/logger"
	"github.com/gometeo/weatherform/internal/model"
	"github.com/gometeo/weatherform/internal/service"
	"github.com/gometeo/weatherform/internal/weather"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("lookup", flag.ContinueOnError)
	flags.SetOutput(stderr)
	countryCode := flags.String("country", "", "ISO 3166-1 alpha-2 country code, e.g. FR")
	city := flags.String("city", "", "city name, accents allowed")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env)

	client := weather.NewClient(cfg.WeatherURL, cfg.APIKey, country.Default(), log)
	search := service.NewSearchService(client, events.NopPublisher{}, log)

	result, err := search.Search(context.Background(), *countryCode, *city)
	if err != nil {
		fmt.Fprintln(stderr, weather.UserMessage(err))
		return 1
	}

	printWeather(stdout, result)
	return 0
}

func printWeather(w io.Writer, result *model.Weather) {
	fmt.Fprintf(w, "%s, %s\n", result.City, result.Country)
	fmt.Fprintf(w, "  %s (%s)\n", result.Description, result.Theme)
	fmt.Fprintf(w, "  Temperature: %.1f °C\n", result.Temperature)
	fmt.Fprintf(w, "  Pressure:    %.0f hPa\n", result.Pressure)
	fmt.Fprintf(w, "  Humidity:    %.0f %%\n", result.Humidity)
}
