package domain

import "time"

// Weather alert types.
const (
	WeatherAlertRain      = "rain"
	WeatherAlertHeavyRain = "heavy_rain"
	WeatherAlertDrought   = "drought"
	WeatherAlertHeat      = "heat"
)

// Weather alert severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// WeatherPrediction one forecast day for a location (weather_predictions table).
// Keyed by (location, date); regenerable, not a durable source of truth.
type WeatherPrediction struct {
	ID                  int64     `db:"id" json:"id"`
	Location            string    `db:"location" json:"location"`
	Date                time.Time `db:"date" json:"date"`
	TempMin             float64   `db:"temperature_min" json:"temperature_min"`
	TempMax             float64   `db:"temperature_max" json:"temperature_max"`
	Humidity            float64   `db:"humidity" json:"humidity"`
	RainfallProbability float64   `db:"rainfall_probability" json:"rainfall_probability"` // %
	RainfallAmount      float64   `db:"rainfall_amount" json:"rainfall_amount"`           // mm
	Condition           string    `db:"weather_condition" json:"weather_condition"`
}

// WeatherAlert domain model (weather_alerts table).
type WeatherAlert struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	AlertType string    `db:"alert_type" json:"alert_type"`
	Message   string    `db:"message" json:"message"`
	Severity  string    `db:"severity" json:"severity"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
