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

func setupMockIrrigationDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresIrrigationRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresIrrigationRepository(db)
}

func TestInsertLogEntry_Success(t *testing.T) {
	db, mock, repo := setupMockIrrigationDB(t)
	defer db.Close()

	now := time.Now()
	entry := &domain.IrrigationLogEntry{
		UserID:      1,
		Action:      domain.IrrigationActionStart,
		WaterAmount: 200,
		Duration:    20,
		Timestamp:   now,
	}

	mock.ExpectQuery(`INSERT INTO irrigation_logs`).
		WithArgs(int64(1), "start", 200.0, 20, false, entry.TriggerReason, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := repo.InsertLogEntry(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastEntryByAction_Success(t *testing.T) {
	db, mock, repo := setupMockIrrigationDB(t)
	defer db.Close()

	ts := time.Now().Add(-30 * time.Minute)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "action", "water_amount", "duration", "auto_triggered", "trigger_reason", "timestamp",
	}).AddRow(int64(5), int64(1), "start", 300.0, 30, true, "Low soil moisture detected: 25%", ts)

	mock.ExpectQuery(`SELECT .+ FROM irrigation_logs`).
		WithArgs(int64(1), "start").
		WillReturnRows(rows)

	entry, err := repo.LastEntryByAction(context.Background(), 1, domain.IrrigationActionStart)
	require.NoError(t, err)
	assert.Equal(t, int64(5), entry.ID)
	assert.Equal(t, "start", entry.Action)
	assert.True(t, entry.AutoTriggered)
	assert.Equal(t, ts, entry.Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastEntryByAction_NotFound(t *testing.T) {
	db, mock, repo := setupMockIrrigationDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM irrigation_logs`).
		WithArgs(int64(1), "stop").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.LastEntryByAction(context.Background(), 1, domain.IrrigationActionStop)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetSettings_Success(t *testing.T) {
	db, mock, repo := setupMockIrrigationDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "auto_mode", "moisture_threshold", "irrigation_duration", "schedule_time", "use_schedule",
	}).AddRow(int64(1), int64(1), true, 30.0, 20, nil, false)

	mock.ExpectQuery(`SELECT .+ FROM irrigation_settings`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	settings, err := repo.GetSettings(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, settings.AutoMode)
	assert.Equal(t, 30.0, settings.MoistureThreshold)
	assert.Equal(t, 20, settings.Duration)
	assert.False(t, settings.ScheduleTime.Valid)
}

func TestGetSettings_NotFound(t *testing.T) {
	db, mock, repo := setupMockIrrigationDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM irrigation_settings`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSettings(context.Background(), 9)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateSettings_PartialPatch(t *testing.T) {
	db, mock, repo := setupMockIrrigationDB(t)
	defer db.Close()

	autoMode := true
	threshold := 35.5

	mock.ExpectExec(`UPDATE irrigation_settings SET auto_mode = \$1, moisture_threshold = \$2 WHERE user_id = \$3`).
		WithArgs(true, 35.5, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSettings(context.Background(), 1, domain.SettingsPatch{
		AutoMode:          &autoMode,
		MoistureThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettings_EmptyPatch(t *testing.T) {
	db, _, repo := setupMockIrrigationDB(t)
	defer db.Close()

	err := repo.UpdateSettings(context.Background(), 1, domain.SettingsPatch{})
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestStats_Success(t *testing.T) {
	db, mock, repo := setupMockIrrigationDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"days", "sessions", "auto", "water", "avg"}).
		AddRow(3, 5, 2, 1500.0, 25.0)

	mock.ExpectQuery(`SELECT .+ FROM irrigation_logs`).
		WithArgs(int64(1), 7).
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.IrrigationDays)
	assert.Equal(t, 5, stats.TotalSessions)
	assert.Equal(t, 2, stats.AutoSessions)
	assert.Equal(t, 1500.0, stats.TotalWaterUsed)
	assert.Equal(t, 25.0, stats.AvgDuration)
}
