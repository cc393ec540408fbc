package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// PostgresNotificationsRepository notifications table access.
type PostgresNotificationsRepository struct {
	db *sql.DB
}

func NewPostgresNotificationsRepository(db *sql.DB) *PostgresNotificationsRepository {
	return &PostgresNotificationsRepository{db: db}
}

var _ NotificationsRepository = (*PostgresNotificationsRepository)(nil)

func (r *PostgresNotificationsRepository) CreateNotification(ctx context.Context, n *domain.Notification) (int64, error) {
	query := `
		INSERT INTO notifications (user_id, title, message, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		n.UserID, n.Title, n.Message, n.Type, n.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert notification: %w", err)
	}
	return id, nil
}

func (r *PostgresNotificationsRepository) ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

func (r *PostgresNotificationsRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *PostgresNotificationsRepository) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	return r.execExpectingRow(ctx, query, notificationID, userID)
}

func (r *PostgresNotificationsRepository) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

func (r *PostgresNotificationsRepository) DeleteNotification(ctx context.Context, userID, notificationID int64) error {
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`
	return r.execExpectingRow(ctx, query, notificationID, userID)
}

func (r *PostgresNotificationsRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute notification update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NotFound("notification")
	}
	return nil
}
