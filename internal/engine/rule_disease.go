package engine

import (
	"fmt"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// Disease names the engine proposes alerts for. Each must exist in the
// crop_diseases reference table; the caller silently drops proposals for
// names that do not resolve.
const (
	DiseaseBlight        = "Blight"
	DiseaseRootRot       = "Root Rot"
	DiseasePowderyMildew = "Powdery Mildew"
)

// evaluateDisease checks the disease-risk conditions against one reading.
func (e *Evaluator) evaluateDisease(r domain.SensorReading) []Action {
	var actions []Action

	// Blight: high humidity in the 15–25°C band.
	if r.Humidity > 80 && r.Temperature >= 15 && r.Temperature <= 25 {
		actions = append(actions, Action{
			Type:        ActionDiseaseAlert,
			DiseaseName: DiseaseBlight,
			RiskLevel:   domain.RiskHigh,
			Message: fmt.Sprintf(
				"High risk of Blight detected! Humidity: %s%%, Temperature: %s°C. Take preventive measures.",
				num(r.Humidity), num(r.Temperature)),
		})
	}

	// Root rot: waterlogged soil.
	if r.SoilMoisture > 80 {
		actions = append(actions, Action{
			Type:        ActionDiseaseAlert,
			DiseaseName: DiseaseRootRot,
			RiskLevel:   domain.RiskMedium,
			Message: fmt.Sprintf(
				"Risk of Root Rot! Soil moisture very high (%s%%). Check drainage and reduce watering.",
				num(r.SoilMoisture)),
		})
	}

	// Powdery mildew: humid and warm.
	if r.Humidity > 70 && r.Temperature >= 20 && r.Temperature <= 25 {
		actions = append(actions, Action{
			Type:        ActionDiseaseAlert,
			DiseaseName: DiseasePowderyMildew,
			RiskLevel:   domain.RiskMedium,
			Message:     "Favorable conditions for Powdery Mildew. Monitor crops closely.",
		})
	}

	return actions
}
