package domain

import "time"

// Notification types.
const (
	NotificationIrrigation = "irrigation"
	NotificationWeather    = "weather"
	NotificationDisease    = "disease"
	NotificationSystem     = "system"
)

// Notification unified inbox entry (notifications table).
// A fan-out mirror created alongside every alert and irrigation start/stop.
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
