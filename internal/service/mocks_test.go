package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// MockUsersRepository is a mock implementation of repository.UsersRepository.
type MockUsersRepository struct {
	mock.Mock
}

func (m *MockUsersRepository) CreateUser(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsersRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUsersRepository) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUsersRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

// MockReadingsRepository is a mock implementation of repository.ReadingsRepository.
type MockReadingsRepository struct {
	mock.Mock
}

func (m *MockReadingsRepository) InsertReading(ctx context.Context, r *domain.SensorReading) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReadingsRepository) LatestReading(ctx context.Context, userID int64) (*domain.SensorReading, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SensorReading), args.Error(1)
}

func (m *MockReadingsRepository) ReadingHistory(ctx context.Context, userID int64, hours, limit int) ([]domain.SensorReading, error) {
	args := m.Called(ctx, userID, hours, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SensorReading), args.Error(1)
}

func (m *MockReadingsRepository) ReadingStats(ctx context.Context, userID int64, hours int) (*domain.SensorStats, error) {
	args := m.Called(ctx, userID, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SensorStats), args.Error(1)
}

// MockIrrigationRepository is a mock implementation of repository.IrrigationRepository.
type MockIrrigationRepository struct {
	mock.Mock
}

func (m *MockIrrigationRepository) InsertLogEntry(ctx context.Context, e *domain.IrrigationLogEntry) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIrrigationRepository) LastEntryByAction(ctx context.Context, userID int64, action string) (*domain.IrrigationLogEntry, error) {
	args := m.Called(ctx, userID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IrrigationLogEntry), args.Error(1)
}

func (m *MockIrrigationRepository) History(ctx context.Context, userID int64, days, limit int) ([]domain.IrrigationLogEntry, error) {
	args := m.Called(ctx, userID, days, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IrrigationLogEntry), args.Error(1)
}

func (m *MockIrrigationRepository) Stats(ctx context.Context, userID int64, days int) (*domain.IrrigationStats, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IrrigationStats), args.Error(1)
}

func (m *MockIrrigationRepository) GetSettings(ctx context.Context, userID int64) (*domain.IrrigationSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IrrigationSettings), args.Error(1)
}

func (m *MockIrrigationRepository) CreateDefaultSettings(ctx context.Context, userID int64, threshold float64, duration int) error {
	args := m.Called(ctx, userID, threshold, duration)
	return args.Error(0)
}

func (m *MockIrrigationRepository) UpdateSettings(ctx context.Context, userID int64, patch domain.SettingsPatch) error {
	args := m.Called(ctx, userID, patch)
	return args.Error(0)
}

// MockDiseasesRepository is a mock implementation of repository.DiseasesRepository.
type MockDiseasesRepository struct {
	mock.Mock
}

func (m *MockDiseasesRepository) ListDiseases(ctx context.Context, cropType string) ([]domain.CropDisease, error) {
	args := m.Called(ctx, cropType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CropDisease), args.Error(1)
}

func (m *MockDiseasesRepository) GetDisease(ctx context.Context, id int64) (*domain.CropDisease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CropDisease), args.Error(1)
}

func (m *MockDiseasesRepository) GetDiseaseByName(ctx context.Context, name string) (*domain.CropDisease, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CropDisease), args.Error(1)
}

// MockAlertsRepository is a mock implementation of repository.AlertsRepository.
type MockAlertsRepository struct {
	mock.Mock
}

func (m *MockAlertsRepository) CreateDiseaseAlert(ctx context.Context, a *domain.DiseaseAlert) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertsRepository) ListDiseaseAlerts(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.DiseaseAlert, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiseaseAlert), args.Error(1)
}

func (m *MockAlertsRepository) MarkDiseaseAlertRead(ctx context.Context, userID, alertID int64) error {
	args := m.Called(ctx, userID, alertID)
	return args.Error(0)
}

func (m *MockAlertsRepository) HasDiseaseAlertSince(ctx context.Context, userID, diseaseID int64, since time.Time) (bool, error) {
	args := m.Called(ctx, userID, diseaseID, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertsRepository) CreateWeatherAlert(ctx context.Context, a *domain.WeatherAlert) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertsRepository) ListWeatherAlerts(ctx context.Context, userID int64, limit int) ([]domain.WeatherAlert, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeatherAlert), args.Error(1)
}

func (m *MockAlertsRepository) HasWeatherAlertSince(ctx context.Context, userID int64, alertType string, since time.Time) (bool, error) {
	args := m.Called(ctx, userID, alertType, since)
	return args.Bool(0), args.Error(1)
}

// MockNotificationsRepository is a mock implementation of repository.NotificationsRepository.
type MockNotificationsRepository struct {
	mock.Mock
}

func (m *MockNotificationsRepository) CreateNotification(ctx context.Context, n *domain.Notification) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationsRepository) ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationsRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationsRepository) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationsRepository) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationsRepository) DeleteNotification(ctx context.Context, userID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockWeatherRepository is a mock implementation of repository.WeatherRepository.
type MockWeatherRepository struct {
	mock.Mock
}

func (m *MockWeatherRepository) InsertPrediction(ctx context.Context, p *domain.WeatherPrediction) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWeatherRepository) DeletePredictions(ctx context.Context, location string) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockWeatherRepository) ListPredictions(ctx context.Context, location string, days int) ([]domain.WeatherPrediction, error) {
	args := m.Called(ctx, location, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeatherPrediction), args.Error(1)
}
