package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/engine"
	"github.com/KerryNK/Smart-Farm/internal/repository"
	"github.com/KerryNK/Smart-Farm/internal/store"
)

const (
	latestReadingPrefix = "smartfarm:latest:"
	latestReadingTTL    = time.Hour
)

// SensorService ingests readings and drives the environmental rules.
// AddReading is the single path every reading takes, whether it arrives
// over HTTP, MQTT or the simulator.
type SensorService struct {
	readings      repository.ReadingsRepository
	irrigation    repository.IrrigationRepository
	diseases      repository.DiseasesRepository
	alerts        repository.AlertsRepository
	notifications repository.NotificationsRepository
	evaluator     *engine.Evaluator
	deduper       *engine.Deduper
	cache         store.KV // nil disables the latest-reading cache
	logger        *zap.Logger

	now func() time.Time
}

func NewSensorService(
	readings repository.ReadingsRepository,
	irrigation repository.IrrigationRepository,
	diseases repository.DiseasesRepository,
	alerts repository.AlertsRepository,
	notifications repository.NotificationsRepository,
	evaluator *engine.Evaluator,
	deduper *engine.Deduper,
	cache store.KV,
	logger *zap.Logger,
) *SensorService {
	return &SensorService{
		readings:      readings,
		irrigation:    irrigation,
		diseases:      diseases,
		alerts:        alerts,
		notifications: notifications,
		evaluator:     evaluator,
		deduper:       deduper,
		cache:         cache,
		logger:        logger,
		now:           time.Now,
	}
}

// AddReading validates and stores a reading, then evaluates the rules
// against it and persists whatever actions they produce. Rule side
// effects are best effort: a failed alert insert is logged, not
// returned, so a sensor never sees its reading rejected because a
// notification could not be written.
func (s *SensorService) AddReading(ctx context.Context, reading *domain.SensorReading) ([]engine.Action, error) {
	if reading.UserID <= 0 {
		return nil, domain.Validationf("user_id is required")
	}
	if reading.SoilMoisture < 0 || reading.SoilMoisture > 100 {
		return nil, domain.Validationf("soil_moisture must be between 0 and 100")
	}
	if reading.Humidity < 0 || reading.Humidity > 100 {
		return nil, domain.Validationf("humidity must be between 0 and 100")
	}
	if reading.PHLevel < 0 || reading.PHLevel > 14 {
		return nil, domain.Validationf("ph_level must be between 0 and 14")
	}

	if reading.Timestamp.IsZero() {
		reading.Timestamp = s.now()
	}

	id, err := s.readings.InsertReading(ctx, reading)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reading: %w", err)
	}
	reading.ID = id
	s.cacheLatest(ctx, reading)

	actions := s.evaluate(ctx, reading)
	for _, action := range actions {
		s.apply(ctx, reading.UserID, action)
	}
	return actions, nil
}

// Latest returns the newest reading for the user, served from the
// cache when a fresh ingest populated it.
func (s *SensorService) Latest(ctx context.Context, userID int64) (*domain.SensorReading, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, latestReadingKey(userID))
		if err == nil {
			var reading domain.SensorReading
			if err := json.Unmarshal([]byte(raw), &reading); err == nil {
				return &reading, nil
			}
		} else if err != store.ErrMiss {
			s.logger.Warn("Latest reading cache read failed", zap.Error(err))
		}
	}

	reading, err := s.readings.LatestReading(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest reading: %w", err)
	}
	s.cacheLatest(ctx, reading)
	return reading, nil
}

func (s *SensorService) cacheLatest(ctx context.Context, reading *domain.SensorReading) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(reading)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, latestReadingKey(reading.UserID), string(raw), latestReadingTTL); err != nil {
		s.logger.Warn("Latest reading cache write failed", zap.Error(err))
	}
}

func latestReadingKey(userID int64) string {
	return latestReadingPrefix + strconv.FormatInt(userID, 10)
}

// History returns readings from the last N hours, newest first.
func (s *SensorService) History(ctx context.Context, userID int64, hours, limit int) ([]domain.SensorReading, error) {
	if hours <= 0 {
		hours = 24
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	readings, err := s.readings.ReadingHistory(ctx, userID, hours, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load reading history: %w", err)
	}
	return readings, nil
}

// Stats returns aggregates over the last N hours.
func (s *SensorService) Stats(ctx context.Context, userID int64, hours int) (*domain.SensorStats, error) {
	if hours <= 0 {
		hours = 24
	}
	stats, err := s.readings.ReadingStats(ctx, userID, hours)
	if err != nil {
		return nil, fmt.Errorf("failed to load reading stats: %w", err)
	}
	return stats, nil
}

func (s *SensorService) evaluate(ctx context.Context, reading *domain.SensorReading) []engine.Action {
	in := engine.Input{
		Reading: *reading,
		Now:     s.now(),
	}

	settings, err := s.irrigation.GetSettings(ctx, reading.UserID)
	if err == nil {
		in.Settings = settings
	} else if !domain.IsNotFound(err) {
		s.logger.Warn("Failed to load irrigation settings, skipping irrigation rule",
			zap.Int64("user_id", reading.UserID),
			zap.Error(err),
		)
	}

	last, err := s.irrigation.LastEntryByAction(ctx, reading.UserID, domain.IrrigationActionStart)
	if err == nil {
		in.LastStart = &last.Timestamp
	} else if !domain.IsNotFound(err) {
		s.logger.Warn("Failed to load last irrigation start",
			zap.Int64("user_id", reading.UserID),
			zap.Error(err),
		)
	}

	return s.evaluator.Evaluate(in)
}

func (s *SensorService) apply(ctx context.Context, userID int64, action engine.Action) {
	switch action.Type {
	case engine.ActionStartIrrigation:
		s.applyIrrigation(ctx, userID, action)
	case engine.ActionDiseaseAlert:
		s.applyDiseaseAlert(ctx, userID, action)
	default:
		s.logger.Warn("Unknown action type", zap.String("type", string(action.Type)))
	}
}

func (s *SensorService) applyIrrigation(ctx context.Context, userID int64, action engine.Action) {
	entry := &domain.IrrigationLogEntry{
		UserID:        userID,
		Action:        domain.IrrigationActionStart,
		WaterAmount:   action.WaterAmount,
		Duration:      action.Duration,
		AutoTriggered: true,
		TriggerReason: nullString(action.Reason),
		Timestamp:     s.now(),
	}
	if _, err := s.irrigation.InsertLogEntry(ctx, entry); err != nil {
		s.logger.Error("Failed to record automatic irrigation",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	s.notify(ctx, userID, domain.NotificationIrrigation, "Automatic Irrigation Started", action.Message)

	s.logger.Info("Automatic irrigation triggered",
		zap.Int64("user_id", userID),
		zap.Int("duration_minutes", action.Duration),
		zap.Float64("water_liters", action.WaterAmount),
	)
}

func (s *SensorService) applyDiseaseAlert(ctx context.Context, userID int64, action engine.Action) {
	disease, err := s.diseases.GetDiseaseByName(ctx, action.DiseaseName)
	if err != nil {
		// A rule can name a disease the catalog does not carry; drop it.
		if !domain.IsNotFound(err) {
			s.logger.Error("Failed to look up disease",
				zap.String("disease", action.DiseaseName),
				zap.Error(err),
			)
		}
		return
	}

	suppress, err := s.deduper.ShouldSuppressDisease(ctx, userID, disease.ID, s.now())
	if err != nil {
		s.logger.Error("Disease dedup check failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}
	if suppress {
		return
	}

	alert := &domain.DiseaseAlert{
		UserID:    userID,
		DiseaseID: disease.ID,
		RiskLevel: action.RiskLevel,
		Message:   action.Message,
		CreatedAt: s.now(),
	}
	if _, err := s.alerts.CreateDiseaseAlert(ctx, alert); err != nil {
		s.logger.Error("Failed to create disease alert",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	s.notify(ctx, userID, domain.NotificationDisease, "Disease Alert: "+disease.Name, action.Message)

	s.logger.Info("Disease alert created",
		zap.Int64("user_id", userID),
		zap.String("disease", disease.Name),
		zap.String("risk_level", action.RiskLevel),
	)
}

func (s *SensorService) notify(ctx context.Context, userID int64, kind, title, message string) {
	n := &domain.Notification{
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
	}
	if _, err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.Error("Failed to create notification",
			zap.Int64("user_id", userID),
			zap.String("type", kind),
			zap.Error(err),
		)
	}
}
