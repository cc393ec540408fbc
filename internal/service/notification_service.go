package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/repository"
)

// NotificationService manages the unified inbox.
type NotificationService struct {
	notifications repository.NotificationsRepository
	logger        *zap.Logger
}

func NewNotificationService(notifications repository.NotificationsRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID int64, limit int, unreadOnly bool) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	items, err := s.notifications.ListNotifications(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, nil
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if notificationID <= 0 {
		return domain.Validationf("Notification ID required")
	}
	if err := s.notifications.MarkNotificationRead(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notifications.MarkAllNotificationsRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	if notificationID <= 0 {
		return domain.Validationf("Notification ID required")
	}
	if err := s.notifications.DeleteNotification(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
