package repository

import (
	"context"
	"time"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// UsersRepository user accounts.
type UsersRepository interface {
	CreateUser(ctx context.Context, u *domain.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	// GetUserByLogin matches username or email.
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// ReadingsRepository sensor readings (append-only).
type ReadingsRepository interface {
	InsertReading(ctx context.Context, r *domain.SensorReading) (int64, error)
	LatestReading(ctx context.Context, userID int64) (*domain.SensorReading, error)
	ReadingHistory(ctx context.Context, userID int64, hours, limit int) ([]domain.SensorReading, error)
	ReadingStats(ctx context.Context, userID int64, hours int) (*domain.SensorStats, error)
}

// IrrigationRepository irrigation log entries and per-user settings.
type IrrigationRepository interface {
	InsertLogEntry(ctx context.Context, e *domain.IrrigationLogEntry) (int64, error)
	// LastEntryByAction returns the most recent entry with the given action,
	// or a NotFoundError if the user has none.
	LastEntryByAction(ctx context.Context, userID int64, action string) (*domain.IrrigationLogEntry, error)
	History(ctx context.Context, userID int64, days, limit int) ([]domain.IrrigationLogEntry, error)
	Stats(ctx context.Context, userID int64, days int) (*domain.IrrigationStats, error)

	GetSettings(ctx context.Context, userID int64) (*domain.IrrigationSettings, error)
	CreateDefaultSettings(ctx context.Context, userID int64, threshold float64, duration int) error
	UpdateSettings(ctx context.Context, userID int64, patch domain.SettingsPatch) error
}

// DiseasesRepository crop disease reference data.
type DiseasesRepository interface {
	ListDiseases(ctx context.Context, cropType string) ([]domain.CropDisease, error)
	GetDisease(ctx context.Context, id int64) (*domain.CropDisease, error)
	GetDiseaseByName(ctx context.Context, name string) (*domain.CropDisease, error)
}

// AlertsRepository disease and weather alerts.
// The Has*Since queries back the dedup window.
type AlertsRepository interface {
	CreateDiseaseAlert(ctx context.Context, a *domain.DiseaseAlert) (int64, error)
	ListDiseaseAlerts(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.DiseaseAlert, error)
	MarkDiseaseAlertRead(ctx context.Context, userID, alertID int64) error
	HasDiseaseAlertSince(ctx context.Context, userID, diseaseID int64, since time.Time) (bool, error)

	CreateWeatherAlert(ctx context.Context, a *domain.WeatherAlert) (int64, error)
	ListWeatherAlerts(ctx context.Context, userID int64, limit int) ([]domain.WeatherAlert, error)
	HasWeatherAlertSince(ctx context.Context, userID int64, alertType string, since time.Time) (bool, error)
}

// NotificationsRepository unified inbox rows.
type NotificationsRepository interface {
	CreateNotification(ctx context.Context, n *domain.Notification) (int64, error)
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
	DeleteNotification(ctx context.Context, userID, notificationID int64) error
}

// WeatherRepository forecast rows, keyed by (location, date).
type WeatherRepository interface {
	InsertPrediction(ctx context.Context, p *domain.WeatherPrediction) (int64, error)
	DeletePredictions(ctx context.Context, location string) error
	// ListPredictions returns forecast days for the location from today up to
	// today+days, ordered by date.
	ListPredictions(ctx context.Context, location string, days int) ([]domain.WeatherPrediction, error)
}
