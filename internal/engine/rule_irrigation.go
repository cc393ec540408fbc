package engine

import "fmt"

// evaluateIrrigation implements the auto-irrigation trigger:
// auto mode on, soil moisture below the user's threshold, and no start entry
// within the cooldown interval. The cooldown guards the action itself and is
// independent of the generic alert dedup window.
func (e *Evaluator) evaluateIrrigation(in Input) *Action {
	settings := in.Settings
	if settings == nil || !settings.AutoMode {
		return nil
	}
	if in.Reading.SoilMoisture >= settings.MoistureThreshold {
		return nil
	}

	if in.LastStart != nil {
		if in.Now.Sub(*in.LastStart) < e.rules.MinIrrigationInterval {
			// Too soon to irrigate again.
			return nil
		}
	}

	duration := settings.Duration
	if duration <= 0 {
		duration = e.rules.DefaultDuration
	}

	return &Action{
		Type:        ActionStartIrrigation,
		Duration:    duration,
		WaterAmount: float64(duration) * e.rules.LitersPerMinute,
		Reason:      fmt.Sprintf("Low soil moisture detected: %s%%", num(in.Reading.SoilMoisture)),
		Message: fmt.Sprintf(
			"Soil moisture is low (%s%%). Automatic irrigation has been started for %d minutes.",
			num(in.Reading.SoilMoisture), duration),
	}
}
