package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// PostgresIrrigationRepository irrigation_logs and irrigation_settings access.
type PostgresIrrigationRepository struct {
	db *sql.DB
}

func NewPostgresIrrigationRepository(db *sql.DB) *PostgresIrrigationRepository {
	return &PostgresIrrigationRepository{db: db}
}

var _ IrrigationRepository = (*PostgresIrrigationRepository)(nil)

const logColumns = `id, user_id, action, water_amount, duration, auto_triggered, trigger_reason, timestamp`

func (r *PostgresIrrigationRepository) InsertLogEntry(ctx context.Context, e *domain.IrrigationLogEntry) (int64, error) {
	query := `
		INSERT INTO irrigation_logs (user_id, action, water_amount, duration, auto_triggered, trigger_reason, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		e.UserID, e.Action, e.WaterAmount, e.Duration, e.AutoTriggered, e.TriggerReason, e.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert irrigation log entry: %w", err)
	}
	return id, nil
}

func (r *PostgresIrrigationRepository) LastEntryByAction(ctx context.Context, userID int64, action string) (*domain.IrrigationLogEntry, error) {
	query := `
		SELECT ` + logColumns + `
		FROM irrigation_logs
		WHERE user_id = $1 AND action = $2
		ORDER BY timestamp DESC
		LIMIT 1
	`
	var e domain.IrrigationLogEntry
	err := r.db.QueryRowContext(ctx, query, userID, action).Scan(
		&e.ID, &e.UserID, &e.Action, &e.WaterAmount, &e.Duration,
		&e.AutoTriggered, &e.TriggerReason, &e.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("irrigation log entry")
		}
		return nil, fmt.Errorf("failed to query last %s entry: %w", action, err)
	}
	return &e, nil
}

func (r *PostgresIrrigationRepository) History(ctx context.Context, userID int64, days, limit int) ([]domain.IrrigationLogEntry, error) {
	query := `
		SELECT ` + logColumns + `
		FROM irrigation_logs
		WHERE user_id = $1 AND timestamp >= NOW() - $2 * INTERVAL '1 day'
		ORDER BY timestamp DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, days, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query irrigation history: %w", err)
	}
	defer rows.Close()

	var entries []domain.IrrigationLogEntry
	for rows.Next() {
		var e domain.IrrigationLogEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Action, &e.WaterAmount, &e.Duration,
			&e.AutoTriggered, &e.TriggerReason, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan irrigation log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate irrigation log: %w", err)
	}
	return entries, nil
}

func (r *PostgresIrrigationRepository) Stats(ctx context.Context, userID int64, days int) (*domain.IrrigationStats, error) {
	query := `
		SELECT
			COUNT(DISTINCT DATE(timestamp)),
			COALESCE(SUM(CASE WHEN action = 'start' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN auto_triggered THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(water_amount), 0),
			COALESCE(AVG(duration), 0)
		FROM irrigation_logs
		WHERE user_id = $1 AND timestamp >= NOW() - $2 * INTERVAL '1 day'
	`
	var stats domain.IrrigationStats
	err := r.db.QueryRowContext(ctx, query, userID, days).Scan(
		&stats.IrrigationDays,
		&stats.TotalSessions,
		&stats.AutoSessions,
		&stats.TotalWaterUsed,
		&stats.AvgDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query irrigation stats: %w", err)
	}
	return &stats, nil
}

func (r *PostgresIrrigationRepository) GetSettings(ctx context.Context, userID int64) (*domain.IrrigationSettings, error) {
	query := `
		SELECT id, user_id, auto_mode, moisture_threshold, irrigation_duration, schedule_time, use_schedule
		FROM irrigation_settings
		WHERE user_id = $1
	`
	var s domain.IrrigationSettings
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.AutoMode, &s.MoistureThreshold, &s.Duration, &s.ScheduleTime, &s.UseSchedule,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("irrigation settings")
		}
		return nil, fmt.Errorf("failed to query irrigation settings: %w", err)
	}
	return &s, nil
}

func (r *PostgresIrrigationRepository) CreateDefaultSettings(ctx context.Context, userID int64, threshold float64, duration int) error {
	query := `
		INSERT INTO irrigation_settings (user_id, auto_mode, moisture_threshold, irrigation_duration, use_schedule)
		VALUES ($1, FALSE, $2, $3, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, threshold, duration); err != nil {
		return fmt.Errorf("failed to create default irrigation settings: %w", err)
	}
	return nil
}

func (r *PostgresIrrigationRepository) UpdateSettings(ctx context.Context, userID int64, patch domain.SettingsPatch) error {
	var sets []string
	var args []any

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if patch.AutoMode != nil {
		add("auto_mode", *patch.AutoMode)
	}
	if patch.MoistureThreshold != nil {
		add("moisture_threshold", *patch.MoistureThreshold)
	}
	if patch.Duration != nil {
		add("irrigation_duration", *patch.Duration)
	}
	if patch.ScheduleTime != nil {
		add("schedule_time", *patch.ScheduleTime)
	}
	if patch.UseSchedule != nil {
		add("use_schedule", *patch.UseSchedule)
	}

	if len(sets) == 0 {
		return domain.Validationf("no settings to update")
	}

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE irrigation_settings SET %s WHERE user_id = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update irrigation settings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NotFound("irrigation settings")
	}
	return nil
}
