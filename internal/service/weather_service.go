package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/engine"
	"github.com/KerryNK/Smart-Farm/internal/repository"
)

const defaultLocation = "Unknown"

var weatherConditions = []string{
	"Sunny", "Partly Cloudy", "Cloudy", "Light Rain", "Heavy Rain", "Thunderstorm",
}

// WeatherService serves forecasts and forecast-driven alerts. Forecasts
// come from the external provider when one is configured, otherwise
// from a synthetic generator; either way they are cached in the
// weather_predictions table keyed by location.
type WeatherService struct {
	users     repository.UsersRepository
	weather   repository.WeatherRepository
	alerts    repository.AlertsRepository
	inbox     repository.NotificationsRepository
	evaluator *engine.Evaluator
	deduper   *engine.Deduper
	client    *WeatherClient // nil when no provider configured
	logger    *zap.Logger

	now func() time.Time
}

func NewWeatherService(
	users repository.UsersRepository,
	weather repository.WeatherRepository,
	alerts repository.AlertsRepository,
	inbox repository.NotificationsRepository,
	evaluator *engine.Evaluator,
	deduper *engine.Deduper,
	client *WeatherClient,
	logger *zap.Logger,
) *WeatherService {
	return &WeatherService{
		users:     users,
		weather:   weather,
		alerts:    alerts,
		inbox:     inbox,
		evaluator: evaluator,
		deduper:   deduper,
		client:    client,
		logger:    logger,
		now:       time.Now,
	}
}

// Forecast returns the stored forecast for the user's farm location,
// generating one first if none exists.
func (s *WeatherService) Forecast(ctx context.Context, userID int64, days int) ([]domain.WeatherPrediction, string, error) {
	if days <= 0 || days > 14 {
		days = 7
	}

	location, err := s.userLocation(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	forecast, err := s.weather.ListPredictions(ctx, location, days)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load forecast: %w", err)
	}
	if len(forecast) == 0 {
		if err := s.refreshForecast(ctx, location, days); err != nil {
			return nil, "", err
		}
		forecast, err = s.weather.ListPredictions(ctx, location, days)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load forecast: %w", err)
		}
	}
	return forecast, location, nil
}

// Generate rebuilds the 7-day forecast for the user's location, then
// evaluates the weather rules over the alert horizon and persists
// whatever alerts survive deduplication.
func (s *WeatherService) Generate(ctx context.Context, userID int64) error {
	location, err := s.userLocation(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.weather.DeletePredictions(ctx, location); err != nil {
		return fmt.Errorf("failed to delete stale forecast: %w", err)
	}
	if err := s.refreshForecast(ctx, location, 7); err != nil {
		return err
	}

	forecast, err := s.weather.ListPredictions(ctx, location, 7)
	if err != nil {
		return fmt.Errorf("failed to load forecast: %w", err)
	}

	for _, action := range s.evaluator.EvaluateForecast(forecast, s.now()) {
		s.applyWeatherAlert(ctx, userID, action)
	}
	return nil
}

// Alerts lists the user's recent weather alerts, newest first.
func (s *WeatherService) Alerts(ctx context.Context, userID int64) ([]domain.WeatherAlert, error) {
	alerts, err := s.alerts.ListWeatherAlerts(ctx, userID, 20)
	if err != nil {
		return nil, fmt.Errorf("failed to load weather alerts: %w", err)
	}
	return alerts, nil
}

func (s *WeatherService) userLocation(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if user.FarmLocation.Valid && user.FarmLocation.String != "" {
		return user.FarmLocation.String, nil
	}
	return defaultLocation, nil
}

// refreshForecast fills weather_predictions for a location, preferring
// the external provider and falling back to the synthetic generator.
func (s *WeatherService) refreshForecast(ctx context.Context, location string, days int) error {
	var forecast []domain.WeatherPrediction

	if s.client != nil {
		fetched, err := s.client.FetchForecast(ctx, location, days)
		if err != nil {
			s.logger.Warn("Weather provider unavailable, using synthetic forecast",
				zap.String("location", location),
				zap.Error(err),
			)
		} else {
			forecast = fetched
		}
	}
	if len(forecast) == 0 {
		forecast = s.synthesizeForecast(location, days)
	}

	for i := range forecast {
		if _, err := s.weather.InsertPrediction(ctx, &forecast[i]); err != nil {
			return fmt.Errorf("failed to store forecast day: %w", err)
		}
	}
	return nil
}

// synthesizeForecast produces plausible daily weather for demo and
// offline use. Rain probability drives amount, condition and humidity.
func (s *WeatherService) synthesizeForecast(location string, days int) []domain.WeatherPrediction {
	forecast := make([]domain.WeatherPrediction, 0, days)
	today := s.now().Truncate(24 * time.Hour)

	for i := 0; i < days; i++ {
		baseTemp := float64(25 + randRange(-5, 5))
		day := domain.WeatherPrediction{
			Location:            location,
			Date:                today.AddDate(0, 0, i),
			TempMin:             baseTemp + float64(randRange(-3, 0)),
			TempMax:             baseTemp + float64(randRange(3, 8)),
			Humidity:            float64(randRange(50, 90)),
			RainfallProbability: float64(randRange(0, 100)),
			Condition:           weatherConditions[0],
		}

		switch {
		case day.RainfallProbability > 70:
			day.RainfallAmount = float64(randRange(5, 50))
			if day.RainfallAmount > 25 {
				day.Condition = weatherConditions[4]
			} else {
				day.Condition = weatherConditions[3]
			}
			day.Humidity = float64(randRange(75, 95))
		case day.RainfallProbability > 50:
			day.Condition = weatherConditions[2]
			day.Humidity = float64(randRange(65, 85))
		case day.RainfallProbability > 30:
			day.Condition = weatherConditions[1]
		}

		if day.RainfallProbability > 85 && day.RainfallAmount > 30 {
			day.Condition = weatherConditions[5]
		}

		forecast = append(forecast, day)
	}
	return forecast
}

func (s *WeatherService) applyWeatherAlert(ctx context.Context, userID int64, action engine.Action) {
	suppress, err := s.deduper.ShouldSuppressWeather(ctx, userID, action.AlertType, s.now())
	if err != nil {
		s.logger.Error("Weather dedup check failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}
	if suppress {
		return
	}

	alert := &domain.WeatherAlert{
		UserID:    userID,
		AlertType: action.AlertType,
		Message:   action.Message,
		Severity:  action.Severity,
		CreatedAt: s.now(),
	}
	if _, err := s.alerts.CreateWeatherAlert(ctx, alert); err != nil {
		s.logger.Error("Failed to create weather alert",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	n := &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationWeather,
		Title:     "Weather Alert",
		Message:   action.Message,
		CreatedAt: s.now(),
	}
	if _, err := s.inbox.CreateNotification(ctx, n); err != nil {
		s.logger.Error("Failed to create notification",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	s.logger.Info("Weather alert created",
		zap.Int64("user_id", userID),
		zap.String("alert_type", action.AlertType),
		zap.String("severity", action.Severity),
	)
}

// randRange returns a uniform integer in [min, max].
func randRange(min, max int) int {
	return min + rand.Intn(max-min+1)
}
