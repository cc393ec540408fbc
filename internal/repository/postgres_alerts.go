package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// PostgresAlertsRepository disease_alerts and weather_alerts access.
type PostgresAlertsRepository struct {
	db *sql.DB
}

func NewPostgresAlertsRepository(db *sql.DB) *PostgresAlertsRepository {
	return &PostgresAlertsRepository{db: db}
}

var _ AlertsRepository = (*PostgresAlertsRepository)(nil)

func (r *PostgresAlertsRepository) CreateDiseaseAlert(ctx context.Context, a *domain.DiseaseAlert) (int64, error) {
	query := `
		INSERT INTO disease_alerts (user_id, disease_id, risk_level, alert_message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		a.UserID, a.DiseaseID, a.RiskLevel, a.Message, a.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert disease alert: %w", err)
	}
	return id, nil
}

func (r *PostgresAlertsRepository) ListDiseaseAlerts(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.DiseaseAlert, error) {
	query := `
		SELECT da.id, da.user_id, da.disease_id, da.risk_level, da.alert_message, da.is_read, da.created_at,
		       cd.disease_name, cd.crop_type, cd.severity_level
		FROM disease_alerts da
		JOIN crop_diseases cd ON da.disease_id = cd.id
		WHERE da.user_id = $1
	`
	if unreadOnly {
		query += ` AND da.is_read = FALSE`
	}
	query += ` ORDER BY da.created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query disease alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.DiseaseAlert
	for rows.Next() {
		var a domain.DiseaseAlert
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.DiseaseID, &a.RiskLevel, &a.Message, &a.IsRead, &a.CreatedAt,
			&a.DiseaseName, &a.CropType, &a.DiseaseSeverity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan disease alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate disease alerts: %w", err)
	}
	return alerts, nil
}

func (r *PostgresAlertsRepository) MarkDiseaseAlertRead(ctx context.Context, userID, alertID int64) error {
	query := `UPDATE disease_alerts SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark disease alert read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NotFound("disease alert")
	}
	return nil
}

func (r *PostgresAlertsRepository) HasDiseaseAlertSince(ctx context.Context, userID, diseaseID int64, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM disease_alerts
			WHERE user_id = $1 AND disease_id = $2 AND created_at >= $3
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, diseaseID, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check disease alert window: %w", err)
	}
	return exists, nil
}

func (r *PostgresAlertsRepository) CreateWeatherAlert(ctx context.Context, a *domain.WeatherAlert) (int64, error) {
	query := `
		INSERT INTO weather_alerts (user_id, alert_type, message, severity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		a.UserID, a.AlertType, a.Message, a.Severity, a.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert weather alert: %w", err)
	}
	return id, nil
}

func (r *PostgresAlertsRepository) ListWeatherAlerts(ctx context.Context, userID int64, limit int) ([]domain.WeatherAlert, error) {
	query := `
		SELECT id, user_id, alert_type, message, severity, is_read, created_at
		FROM weather_alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.WeatherAlert
	for rows.Next() {
		var a domain.WeatherAlert
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.AlertType, &a.Message, &a.Severity, &a.IsRead, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weather alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weather alerts: %w", err)
	}
	return alerts, nil
}

func (r *PostgresAlertsRepository) HasWeatherAlertSince(ctx context.Context, userID int64, alertType string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM weather_alerts
			WHERE user_id = $1 AND alert_type = $2 AND created_at >= $3
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, alertType, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check weather alert window: %w", err)
	}
	return exists, nil
}
