package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/engine"
	"github.com/KerryNK/Smart-Farm/internal/repository"
)

// Simulation condition presets.
const (
	ConditionNormal      = "normal"
	ConditionDrought     = "drought"
	ConditionWet         = "wet"
	ConditionDiseaseRisk = "disease_risk"
	ConditionOptimal     = "optimal"
)

// SimulatorService produces demo sensor data. Historical backfill is
// written straight to storage so old readings cannot fire alerts;
// condition presets go through the normal ingestion path so the rules
// react to them exactly as they would to a live sensor.
type SimulatorService struct {
	readings repository.ReadingsRepository
	sensors  *SensorService
	logger   *zap.Logger

	now func() time.Time
}

func NewSimulatorService(readings repository.ReadingsRepository, sensors *SensorService, logger *zap.Logger) *SimulatorService {
	return &SimulatorService{
		readings: readings,
		sensors:  sensors,
		logger:   logger,
		now:      time.Now,
	}
}

// GenerateContinuous backfills the last 24 hours with readings every
// 30 minutes, following rough daily patterns: moisture falls during
// the day, temperature peaks midday, humidity tracks temperature
// inversely and light follows the sun.
func (s *SimulatorService) GenerateContinuous(ctx context.Context, userID int64) (int, error) {
	if userID <= 0 {
		return 0, domain.Validationf("user_id is required")
	}

	start := s.now().Add(-24 * time.Hour)
	count := 0

	for i := 0; i < 48; i++ {
		ts := start.Add(time.Duration(i) * 30 * time.Minute)
		reading := s.syntheticReading(userID, ts)
		if _, err := s.readings.InsertReading(ctx, reading); err != nil {
			return count, fmt.Errorf("failed to insert simulated reading: %w", err)
		}
		count++
	}

	s.logger.Info("Generated continuous sensor data",
		zap.Int64("user_id", userID),
		zap.Int("records", count),
	)
	return count, nil
}

// SimulateCondition ingests one reading matching a named environmental
// preset. Unknown conditions fall back to normal.
func (s *SimulatorService) SimulateCondition(ctx context.Context, userID int64, condition string) (*domain.SensorReading, []engine.Action, error) {
	if userID <= 0 {
		return nil, nil, domain.Validationf("user_id is required")
	}

	reading := &domain.SensorReading{UserID: userID}
	switch condition {
	case ConditionDrought:
		reading.SoilMoisture = float64(20 + randRange(-5, 5))
		reading.Temperature = float64(35 + randRange(-2, 2))
		reading.Humidity = float64(30 + randRange(-5, 5))
		reading.LightIntensity = float64(12000 + randRange(-1000, 1000))
		reading.PHLevel = 6.8 + float64(randRange(-3, 3))/10
	case ConditionWet:
		reading.SoilMoisture = float64(85 + randRange(-5, 5))
		reading.Temperature = float64(20 + randRange(-2, 2))
		reading.Humidity = float64(90 + randRange(-5, 5))
		reading.LightIntensity = float64(3000 + randRange(-1000, 1000))
		reading.PHLevel = 6.2 + float64(randRange(-3, 3))/10
	case ConditionDiseaseRisk:
		reading.SoilMoisture = float64(75 + randRange(-5, 5))
		reading.Temperature = float64(22 + randRange(-2, 2))
		reading.Humidity = float64(85 + randRange(-5, 5))
		reading.LightIntensity = float64(5000 + randRange(-1000, 1000))
		reading.PHLevel = 6.5 + float64(randRange(-3, 3))/10
	case ConditionOptimal:
		reading.SoilMoisture = float64(60 + randRange(-5, 5))
		reading.Temperature = float64(24 + randRange(-2, 2))
		reading.Humidity = float64(60 + randRange(-5, 5))
		reading.LightIntensity = float64(8000 + randRange(-1000, 1000))
		reading.PHLevel = 6.5 + float64(randRange(-2, 2))/10
	default:
		reading.SoilMoisture = float64(50 + randRange(-10, 10))
		reading.Temperature = float64(25 + randRange(-3, 3))
		reading.Humidity = float64(65 + randRange(-10, 10))
		reading.LightIntensity = float64(8000 + randRange(-2000, 2000))
		reading.PHLevel = 6.5 + float64(randRange(-5, 5))/10
	}

	actions, err := s.sensors.AddReading(ctx, reading)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Simulated conditions",
		zap.Int64("user_id", userID),
		zap.String("condition", condition),
		zap.Int("actions", len(actions)),
	)
	return reading, actions, nil
}

func (s *SimulatorService) syntheticReading(userID int64, ts time.Time) *domain.SensorReading {
	hour := ts.Hour()

	moisture := 50.0
	if hour >= 6 && hour <= 18 {
		moisture -= float64(hour-6) * 1.5
	}
	moisture = clamp(moisture+float64(randRange(-5, 5)), 20, 80)

	temp := 22.0
	switch {
	case hour >= 10 && hour <= 16:
		temp += float64(hour-10) * 2
	case hour <= 6:
		temp -= float64(6-hour) * 1.5
	}
	temp = clamp(temp+float64(randRange(-2, 2)), 10, 40)

	humidity := clamp(85-(temp-15)*1.5+float64(randRange(-5, 5)), 40, 95)

	light := 0.0
	if hour >= 6 && hour <= 18 {
		diff := hour - 12
		if diff < 0 {
			diff = -diff
		}
		light = float64(5000 + (12-diff)*1500 + randRange(-1000, 1000))
	}
	if light < 0 {
		light = 0
	}

	ph := clamp(6.5+float64(randRange(-10, 10))/20, 5.0, 8.0)

	return &domain.SensorReading{
		UserID:         userID,
		SoilMoisture:   moisture,
		Temperature:    temp,
		Humidity:       humidity,
		LightIntensity: light,
		PHLevel:        ph,
		Timestamp:      ts,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
