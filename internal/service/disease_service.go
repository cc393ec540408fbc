package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/repository"
)

// DiseaseService serves the disease catalog and the alerts the rule
// engine raised against it.
type DiseaseService struct {
	diseases repository.DiseasesRepository
	alerts   repository.AlertsRepository
	logger   *zap.Logger
}

func NewDiseaseService(
	diseases repository.DiseasesRepository,
	alerts repository.AlertsRepository,
	logger *zap.Logger,
) *DiseaseService {
	return &DiseaseService{
		diseases: diseases,
		alerts:   alerts,
		logger:   logger,
	}
}

// List returns catalog entries. A crop type filter also matches
// diseases that apply to all crops.
func (s *DiseaseService) List(ctx context.Context, cropType string) ([]domain.CropDisease, error) {
	diseases, err := s.diseases.ListDiseases(ctx, cropType)
	if err != nil {
		return nil, fmt.Errorf("failed to list diseases: %w", err)
	}
	return diseases, nil
}

// Get returns one catalog entry.
func (s *DiseaseService) Get(ctx context.Context, id int64) (*domain.CropDisease, error) {
	if id <= 0 {
		return nil, domain.Validationf("Disease ID required")
	}
	disease, err := s.diseases.GetDisease(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load disease: %w", err)
	}
	return disease, nil
}

// Alerts lists the user's recent disease alerts with joined catalog
// fields, newest first.
func (s *DiseaseService) Alerts(ctx context.Context, userID int64, unreadOnly bool) ([]domain.DiseaseAlert, error) {
	alerts, err := s.alerts.ListDiseaseAlerts(ctx, userID, unreadOnly, 20)
	if err != nil {
		return nil, fmt.Errorf("failed to list disease alerts: %w", err)
	}
	return alerts, nil
}

// MarkAlertRead marks one of the user's alerts as read.
func (s *DiseaseService) MarkAlertRead(ctx context.Context, userID, alertID int64) error {
	if alertID <= 0 {
		return domain.Validationf("Alert ID required")
	}
	if err := s.alerts.MarkDiseaseAlertRead(ctx, userID, alertID); err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	return nil
}
