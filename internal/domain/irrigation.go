package domain

import (
	"database/sql"
	"time"
)

// Irrigation log actions.
const (
	IrrigationActionStart = "start"
	IrrigationActionStop  = "stop"
)

// IrrigationSettings domain model (irrigation_settings table).
// One row per user, created with defaults at registration.
type IrrigationSettings struct {
	ID                int64          `db:"id" json:"id"`
	UserID            int64          `db:"user_id" json:"user_id"`
	AutoMode          bool           `db:"auto_mode" json:"auto_mode"`
	MoistureThreshold float64        `db:"moisture_threshold" json:"moisture_threshold"` // %
	Duration          int            `db:"irrigation_duration" json:"irrigation_duration"` // minutes
	ScheduleTime      sql.NullString `db:"schedule_time" json:"-"`                        // "HH:MM", nullable
	UseSchedule       bool           `db:"use_schedule" json:"use_schedule"`
}

// SettingsPatch is a partial update for IrrigationSettings.
// Nil fields are left unchanged.
type SettingsPatch struct {
	AutoMode          *bool    `json:"auto_mode"`
	MoistureThreshold *float64 `json:"moisture_threshold"`
	Duration          *int     `json:"irrigation_duration"`
	ScheduleTime      *string  `json:"schedule_time"`
	UseSchedule       *bool    `json:"use_schedule"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.AutoMode == nil && p.MoistureThreshold == nil && p.Duration == nil &&
		p.ScheduleTime == nil && p.UseSchedule == nil
}

// IrrigationLogEntry domain model (irrigation_logs table, append-only).
// A user's current session is derived from the log, never stored.
type IrrigationLogEntry struct {
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	Action        string         `db:"action" json:"action"` // start | stop
	WaterAmount   float64        `db:"water_amount" json:"water_amount"` // liters
	Duration      int            `db:"duration" json:"duration"`         // minutes
	AutoTriggered bool           `db:"auto_triggered" json:"auto_triggered"`
	TriggerReason sql.NullString `db:"trigger_reason" json:"-"`
	Timestamp     time.Time      `db:"timestamp" json:"timestamp"`
}

// IrrigationSession current-session info while irrigation is active.
type IrrigationSession struct {
	StartTime       time.Time `json:"start_time"`
	ElapsedMinutes  int       `json:"elapsed_minutes"`
	PlannedDuration int       `json:"planned_duration"`
	AutoTriggered   bool      `json:"auto_triggered"`
}

// IrrigationStats aggregated usage over a day window.
type IrrigationStats struct {
	IrrigationDays int     `json:"irrigation_days"`
	TotalSessions  int     `json:"total_sessions"`
	AutoSessions   int     `json:"auto_sessions"`
	TotalWaterUsed float64 `json:"total_water_used"`
	AvgDuration    float64 `json:"avg_duration"`
}
