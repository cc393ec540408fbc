package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

func setupMockReadingsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresReadingsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresReadingsRepository(db)
}

func TestInsertReading_Success(t *testing.T) {
	db, mock, repo := setupMockReadingsDB(t)
	defer db.Close()

	now := time.Now()
	reading := &domain.SensorReading{
		UserID:         1,
		SoilMoisture:   45.5,
		Temperature:    24.0,
		Humidity:       60.0,
		LightIntensity: 8000,
		PHLevel:        6.5,
		Timestamp:      now,
	}

	mock.ExpectQuery(`INSERT INTO sensor_data`).
		WithArgs(int64(1), 45.5, 24.0, 60.0, 8000.0, 6.5, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(101)))

	id, err := repo.InsertReading(context.Background(), reading)
	require.NoError(t, err)
	assert.Equal(t, int64(101), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestReading_Success(t *testing.T) {
	db, mock, repo := setupMockReadingsDB(t)
	defer db.Close()

	ts := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "soil_moisture", "temperature", "humidity", "light_intensity", "ph_level", "timestamp",
	}).AddRow(int64(101), int64(1), 45.5, 24.0, 60.0, 8000.0, 6.5, ts)

	mock.ExpectQuery(`SELECT .+ FROM sensor_data`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	reading, err := repo.LatestReading(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 45.5, reading.SoilMoisture)
	assert.Equal(t, ts, reading.Timestamp)
}

func TestLatestReading_NotFound(t *testing.T) {
	db, mock, repo := setupMockReadingsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM sensor_data`).
		WithArgs(int64(2)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.LatestReading(context.Background(), 2)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestReadingStats_EmptyWindowReturnsZeros(t *testing.T) {
	db, mock, repo := setupMockReadingsDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"avg_m", "min_m", "max_m", "avg_t", "min_t", "max_t", "avg_h", "min_h", "max_h", "avg_ph",
	}).AddRow(0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0)

	mock.ExpectQuery(`SELECT`).
		WithArgs(int64(1), 24).
		WillReturnRows(rows)

	stats, err := repo.ReadingStats(context.Background(), 1, 24)
	require.NoError(t, err)
	assert.Zero(t, stats.AvgMoisture)
	assert.Zero(t, stats.AvgPH)
}
