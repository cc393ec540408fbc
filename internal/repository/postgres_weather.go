package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// PostgresWeatherRepository weather_predictions table access.
type PostgresWeatherRepository struct {
	db *sql.DB
}

func NewPostgresWeatherRepository(db *sql.DB) *PostgresWeatherRepository {
	return &PostgresWeatherRepository{db: db}
}

var _ WeatherRepository = (*PostgresWeatherRepository)(nil)

func (r *PostgresWeatherRepository) InsertPrediction(ctx context.Context, p *domain.WeatherPrediction) (int64, error) {
	query := `
		INSERT INTO weather_predictions
			(location, date, temperature_min, temperature_max, humidity, rainfall_probability, rainfall_amount, weather_condition)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.Location, p.Date, p.TempMin, p.TempMax, p.Humidity,
		p.RainfallProbability, p.RainfallAmount, p.Condition,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert weather prediction: %w", err)
	}
	return id, nil
}

func (r *PostgresWeatherRepository) DeletePredictions(ctx context.Context, location string) error {
	query := `DELETE FROM weather_predictions WHERE location = $1`
	if _, err := r.db.ExecContext(ctx, query, location); err != nil {
		return fmt.Errorf("failed to delete weather predictions: %w", err)
	}
	return nil
}

func (r *PostgresWeatherRepository) ListPredictions(ctx context.Context, location string, days int) ([]domain.WeatherPrediction, error) {
	query := `
		SELECT id, location, date, temperature_min, temperature_max, humidity,
		       rainfall_probability, rainfall_amount, weather_condition
		FROM weather_predictions
		WHERE location = $1
		  AND date >= CURRENT_DATE
		  AND date <= CURRENT_DATE + $2 * INTERVAL '1 day'
		ORDER BY date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, location, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather predictions: %w", err)
	}
	defer rows.Close()

	var predictions []domain.WeatherPrediction
	for rows.Next() {
		var p domain.WeatherPrediction
		if err := rows.Scan(
			&p.ID, &p.Location, &p.Date, &p.TempMin, &p.TempMax, &p.Humidity,
			&p.RainfallProbability, &p.RainfallAmount, &p.Condition,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weather prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weather predictions: %w", err)
	}
	return predictions, nil
}
