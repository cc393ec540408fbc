package engine

import "strconv"

// ActionType identifies what a fired rule proposes.
type ActionType string

const (
	ActionStartIrrigation ActionType = "start_irrigation"
	ActionDiseaseAlert    ActionType = "disease_alert"
	ActionWeatherAlert    ActionType = "weather_alert"
)

// Action is one proposed side effect from a rule evaluation.
// The engine never persists anything itself; the caller decides whether the
// action survives deduplication and writes the corresponding rows.
type Action struct {
	Type ActionType

	// Irrigation
	Duration    int     // planned minutes
	WaterAmount float64 // estimated liters
	Reason      string

	// Disease
	DiseaseName string
	RiskLevel   string

	// Weather
	AlertType string
	Severity  string

	Message string
}

// num renders a float the way the alert messages expect: no exponent,
// no trailing zeros ("85" not "85.000000").
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
