package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/config"
	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/repository"
)

// IrrigationService drives the irrigation state machine. There is no
// session table: whether irrigation is running is derived from the
// append-only log by comparing the newest start against the newest stop.
type IrrigationService struct {
	irrigation    repository.IrrigationRepository
	notifications repository.NotificationsRepository
	rules         config.RulesConfig
	logger        *zap.Logger

	now func() time.Time
}

func NewIrrigationService(
	irrigation repository.IrrigationRepository,
	notifications repository.NotificationsRepository,
	rules config.RulesConfig,
	logger *zap.Logger,
) *IrrigationService {
	return &IrrigationService{
		irrigation:    irrigation,
		notifications: notifications,
		rules:         rules,
		logger:        logger,
		now:           time.Now,
	}
}

// Start begins a manual irrigation session. duration <= 0 falls back to
// the global default. Planned water is estimated up front from the
// planned duration; the stop entry records the actual figures.
func (s *IrrigationService) Start(ctx context.Context, userID int64, duration int) (*domain.IrrigationLogEntry, error) {
	if duration <= 0 {
		duration = s.rules.DefaultDuration
	}

	active, _, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, domain.Conflictf("Irrigation already running")
	}

	entry := &domain.IrrigationLogEntry{
		UserID:        userID,
		Action:        domain.IrrigationActionStart,
		WaterAmount:   float64(duration) * s.rules.LitersPerMinute,
		Duration:      duration,
		AutoTriggered: false,
		TriggerReason: nullString("Manual start"),
		Timestamp:     s.now(),
	}
	if _, err := s.irrigation.InsertLogEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record irrigation start: %w", err)
	}

	s.notify(ctx, userID, "Irrigation Started",
		fmt.Sprintf("Irrigation started manually for %d minutes.", duration))

	s.logger.Info("Irrigation started",
		zap.Int64("user_id", userID),
		zap.Int("duration_minutes", duration),
	)
	return entry, nil
}

// Stop ends the active session. The recorded duration is wall-clock
// minutes since the start entry, rounded, and water is derived from it.
func (s *IrrigationService) Stop(ctx context.Context, userID int64) (*domain.IrrigationLogEntry, error) {
	active, start, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, domain.Conflictf("No active irrigation found")
	}

	now := s.now()
	elapsed := int(math.Round(now.Sub(start.Timestamp).Minutes()))
	entry := &domain.IrrigationLogEntry{
		UserID:        userID,
		Action:        domain.IrrigationActionStop,
		WaterAmount:   float64(elapsed) * s.rules.LitersPerMinute,
		Duration:      elapsed,
		AutoTriggered: false,
		Timestamp:     now,
	}
	if _, err := s.irrigation.InsertLogEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record irrigation stop: %w", err)
	}

	s.notify(ctx, userID, "Irrigation Stopped",
		fmt.Sprintf("Irrigation stopped after %d minutes.", elapsed))

	s.logger.Info("Irrigation stopped",
		zap.Int64("user_id", userID),
		zap.Int("duration_minutes", elapsed),
	)
	return entry, nil
}

// Status reports whether irrigation is running and, if so, the current
// session derived from the newest start entry.
func (s *IrrigationService) Status(ctx context.Context, userID int64) (*domain.IrrigationSession, error) {
	active, start, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, nil
	}
	return &domain.IrrigationSession{
		StartTime:       start.Timestamp,
		ElapsedMinutes:  int(math.Round(s.now().Sub(start.Timestamp).Minutes())),
		PlannedDuration: start.Duration,
		AutoTriggered:   start.AutoTriggered,
	}, nil
}

// GetSettings returns the user's irrigation settings.
func (s *IrrigationService) GetSettings(ctx context.Context, userID int64) (*domain.IrrigationSettings, error) {
	settings, err := s.irrigation.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load irrigation settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a partial patch and returns the updated row.
func (s *IrrigationService) UpdateSettings(ctx context.Context, userID int64, patch domain.SettingsPatch) (*domain.IrrigationSettings, error) {
	if patch.IsEmpty() {
		return nil, domain.Validationf("No settings to update")
	}
	if patch.MoistureThreshold != nil && (*patch.MoistureThreshold < 0 || *patch.MoistureThreshold > 100) {
		return nil, domain.Validationf("moisture_threshold must be between 0 and 100")
	}
	if patch.Duration != nil && *patch.Duration <= 0 {
		return nil, domain.Validationf("irrigation_duration must be positive")
	}

	if err := s.irrigation.UpdateSettings(ctx, userID, patch); err != nil {
		return nil, fmt.Errorf("failed to update irrigation settings: %w", err)
	}
	return s.GetSettings(ctx, userID)
}

// History returns log entries from the last N days, newest first.
func (s *IrrigationService) History(ctx context.Context, userID int64, days, limit int) ([]domain.IrrigationLogEntry, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	entries, err := s.irrigation.History(ctx, userID, days, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load irrigation history: %w", err)
	}
	return entries, nil
}

// Stats aggregates water usage over the last N days.
func (s *IrrigationService) Stats(ctx context.Context, userID int64, days int) (*domain.IrrigationStats, error) {
	if days <= 0 {
		days = 30
	}
	stats, err := s.irrigation.Stats(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load irrigation stats: %w", err)
	}
	return stats, nil
}

// activeSession reports whether the newest start postdates the newest
// stop, returning the start entry when it does.
func (s *IrrigationService) activeSession(ctx context.Context, userID int64) (bool, *domain.IrrigationLogEntry, error) {
	start, err := s.irrigation.LastEntryByAction(ctx, userID, domain.IrrigationActionStart)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("failed to load last irrigation start: %w", err)
	}

	stop, err := s.irrigation.LastEntryByAction(ctx, userID, domain.IrrigationActionStop)
	if err != nil {
		if domain.IsNotFound(err) {
			return true, start, nil
		}
		return false, nil, fmt.Errorf("failed to load last irrigation stop: %w", err)
	}

	if start.Timestamp.After(stop.Timestamp) {
		return true, start, nil
	}
	return false, nil, nil
}

func (s *IrrigationService) notify(ctx context.Context, userID int64, title, message string) {
	n := &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationIrrigation,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
	}
	if _, err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.Error("Failed to create notification",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
