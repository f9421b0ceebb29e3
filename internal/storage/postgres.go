package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver

	"github.com/gometeo/weatherform/internal/model"
)

// CountryStorage reads optional country reference rows that extend or
// rename the built-in ISO table.
type CountryStorage struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(ctx context.Context, dsn string, logger *slog.Logger) (*CountryStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть БД: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	s := NewWithDB(db, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewWithDB(db *sql.DB, logger *slog.Logger) *CountryStorage {
	return &CountryStorage{db: db, logger: logger.With("component", "country_storage")}
}

const createCountriesTable = `
	CREATE TABLE IF NOT EXISTS countries (
		code CHAR(2) PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	);`

// EnsureSchema creates the countries table when it is missing.
func (s *CountryStorage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createCountriesTable); err != nil {
		return fmt.Errorf("ошибка создания таблицы countries: %w", err)
	}
	return nil
}

const selectCountries = `SELECT code, name FROM countries ORDER BY name`

func (s *CountryStorage) LoadCountries(ctx context.Context) ([]model.Country, error) {
	rows, err := s.db.QueryContext(ctx, selectCountries)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса стран: %w", err)
	}
	defer rows.Close()

	var countries []model.Country
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки страны: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения стран: %w", err)
	}

	s.logger.Debug("Страны загружены", "count", len(countries))
	return countries, nil
}

func (s *CountryStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CountryStorage) Close() error {
	return s.db.Close()
}
