package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// PostgresReadingsRepository sensor_data table access.
type PostgresReadingsRepository struct {
	db *sql.DB
}

func NewPostgresReadingsRepository(db *sql.DB) *PostgresReadingsRepository {
	return &PostgresReadingsRepository{db: db}
}

var _ ReadingsRepository = (*PostgresReadingsRepository)(nil)

const readingColumns = `id, user_id, soil_moisture, temperature, humidity, light_intensity, ph_level, timestamp`

func (r *PostgresReadingsRepository) InsertReading(ctx context.Context, reading *domain.SensorReading) (int64, error) {
	query := `
		INSERT INTO sensor_data (user_id, soil_moisture, temperature, humidity, light_intensity, ph_level, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		reading.UserID,
		reading.SoilMoisture,
		reading.Temperature,
		reading.Humidity,
		reading.LightIntensity,
		reading.PHLevel,
		reading.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sensor reading: %w", err)
	}
	return id, nil
}

func (r *PostgresReadingsRepository) LatestReading(ctx context.Context, userID int64) (*domain.SensorReading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM sensor_data
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`
	var reading domain.SensorReading
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&reading.ID,
		&reading.UserID,
		&reading.SoilMoisture,
		&reading.Temperature,
		&reading.Humidity,
		&reading.LightIntensity,
		&reading.PHLevel,
		&reading.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("sensor reading")
		}
		return nil, fmt.Errorf("failed to query latest reading: %w", err)
	}
	return &reading, nil
}

func (r *PostgresReadingsRepository) ReadingHistory(ctx context.Context, userID int64, hours, limit int) ([]domain.SensorReading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM sensor_data
		WHERE user_id = $1 AND timestamp >= NOW() - $2 * INTERVAL '1 hour'
		ORDER BY timestamp ASC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, hours, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading history: %w", err)
	}
	defer rows.Close()

	var readings []domain.SensorReading
	for rows.Next() {
		var reading domain.SensorReading
		if err := rows.Scan(
			&reading.ID,
			&reading.UserID,
			&reading.SoilMoisture,
			&reading.Temperature,
			&reading.Humidity,
			&reading.LightIntensity,
			&reading.PHLevel,
			&reading.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}
	return readings, nil
}

func (r *PostgresReadingsRepository) ReadingStats(ctx context.Context, userID int64, hours int) (*domain.SensorStats, error) {
	query := `
		SELECT
			COALESCE(AVG(soil_moisture), 0),
			COALESCE(MIN(soil_moisture), 0),
			COALESCE(MAX(soil_moisture), 0),
			COALESCE(AVG(temperature), 0),
			COALESCE(MIN(temperature), 0),
			COALESCE(MAX(temperature), 0),
			COALESCE(AVG(humidity), 0),
			COALESCE(MIN(humidity), 0),
			COALESCE(MAX(humidity), 0),
			COALESCE(AVG(ph_level), 0)
		FROM sensor_data
		WHERE user_id = $1 AND timestamp >= NOW() - $2 * INTERVAL '1 hour'
	`
	var stats domain.SensorStats
	err := r.db.QueryRowContext(ctx, query, userID, hours).Scan(
		&stats.AvgMoisture,
		&stats.MinMoisture,
		&stats.MaxMoisture,
		&stats.AvgTemp,
		&stats.MinTemp,
		&stats.MaxTemp,
		&stats.AvgHumidity,
		&stats.MinHumidity,
		&stats.MaxHumidity,
		&stats.AvgPH,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading stats: %w", err)
	}
	return &stats, nil
}
