package engine

import (
	"context"
	"fmt"
	"time"
)

// AlertHistory is the slice of persistence the deduper needs: whether any
// alert with the given key was created for the user since the cutoff.
type AlertHistory interface {
	HasDiseaseAlertSince(ctx context.Context, userID, diseaseID int64, since time.Time) (bool, error)
	HasWeatherAlertSince(ctx context.Context, userID int64, alertType string, since time.Time) (bool, error)
}

// Deduper suppresses repeated alerts of the same kind within a lockout
// window anchored to creation time. It is a last-write lockout: while a
// condition stays true the user gets exactly one alert per window, and the
// next non-suppressed alert becomes the new anchor.
//
// The read-then-write check is not transactional; near-simultaneous readings
// for the same user can both pass it. Accepted as best effort.
type Deduper struct {
	history AlertHistory
	window  time.Duration
}

// NewDeduper creates a deduper over the given history with the given window.
func NewDeduper(history AlertHistory, window time.Duration) *Deduper {
	return &Deduper{history: history, window: window}
}

// ShouldSuppressDisease reports whether a disease alert for (user, disease)
// would duplicate one created within the window.
func (d *Deduper) ShouldSuppressDisease(ctx context.Context, userID, diseaseID int64, now time.Time) (bool, error) {
	exists, err := d.history.HasDiseaseAlertSince(ctx, userID, diseaseID, now.Add(-d.window))
	if err != nil {
		return false, fmt.Errorf("failed to check disease alert history: %w", err)
	}
	return exists, nil
}

// ShouldSuppressWeather reports whether a weather alert for (user, alertType)
// would duplicate one created within the window.
func (d *Deduper) ShouldSuppressWeather(ctx context.Context, userID int64, alertType string, now time.Time) (bool, error) {
	exists, err := d.history.HasWeatherAlertSince(ctx, userID, alertType, now.Add(-d.window))
	if err != nil {
		return false, fmt.Errorf("failed to check weather alert history: %w", err)
	}
	return exists, nil
}
