package domain

import "time"

// SensorReading domain model (sensor_data table).
// One timestamped snapshot of sensor values for a user's farm.
// Immutable once stored.
type SensorReading struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	SoilMoisture   float64   `db:"soil_moisture" json:"soil_moisture"`     // %
	Temperature    float64   `db:"temperature" json:"temperature"`         // °C
	Humidity       float64   `db:"humidity" json:"humidity"`               // %
	LightIntensity float64   `db:"light_intensity" json:"light_intensity"` // lux
	PHLevel        float64   `db:"ph_level" json:"ph_level"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
}

// SensorStats aggregated sensor values over a time window.
type SensorStats struct {
	AvgMoisture float64 `json:"avg_moisture"`
	MinMoisture float64 `json:"min_moisture"`
	MaxMoisture float64 `json:"max_moisture"`
	AvgTemp     float64 `json:"avg_temp"`
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp"`
	AvgHumidity float64 `json:"avg_humidity"`
	MinHumidity float64 `json:"min_humidity"`
	MaxHumidity float64 `json:"max_humidity"`
	AvgPH       float64 `json:"avg_ph"`
}
