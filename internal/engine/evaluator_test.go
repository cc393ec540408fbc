package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/config"
	"github.com/KerryNK/Smart-Farm/internal/domain"
)

func testRules() config.RulesConfig {
	return config.RulesConfig{
		DefaultMoistureThreshold: 30,
		DefaultDuration:          30,
		MinIrrigationInterval:    120 * time.Minute,
		DedupWindow:              24 * time.Hour,
		LitersPerMinute:          10,
		ForecastAlertDays:        3,
	}
}

func newTestEvaluator() *Evaluator {
	return New(testRules(), zap.NewNop())
}

func autoSettings(threshold float64, duration int) *domain.IrrigationSettings {
	return &domain.IrrigationSettings{
		UserID:            1,
		AutoMode:          true,
		MoistureThreshold: threshold,
		Duration:          duration,
	}
}

func reading(moisture, temp, humidity float64) domain.SensorReading {
	return domain.SensorReading{
		UserID:       1,
		SoilMoisture: moisture,
		Temperature:  temp,
		Humidity:     humidity,
		Timestamp:    time.Now(),
	}
}

func actionsOfType(actions []Action, t ActionType) []Action {
	var out []Action
	for _, a := range actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func TestEvaluate_IrrigationTrigger(t *testing.T) {
	e := newTestEvaluator()
	now := time.Now()

	actions := e.Evaluate(Input{
		Reading:  reading(25, 22, 50),
		Settings: autoSettings(30, 20),
		Now:      now,
	})

	starts := actionsOfType(actions, ActionStartIrrigation)
	require.Len(t, starts, 1)
	assert.Equal(t, 20, starts[0].Duration)
	assert.Equal(t, 200.0, starts[0].WaterAmount)
	assert.Equal(t, "Low soil moisture detected: 25%", starts[0].Reason)
}

func TestEvaluate_NoIrrigationAboveThreshold(t *testing.T) {
	e := newTestEvaluator()

	actions := e.Evaluate(Input{
		Reading:  reading(35, 22, 50),
		Settings: autoSettings(30, 20),
		Now:      time.Now(),
	})

	assert.Empty(t, actionsOfType(actions, ActionStartIrrigation))
}

func TestEvaluate_NoIrrigationWhenAutoModeOff(t *testing.T) {
	e := newTestEvaluator()
	settings := autoSettings(30, 20)
	settings.AutoMode = false

	actions := e.Evaluate(Input{
		Reading:  reading(10, 22, 50),
		Settings: settings,
		Now:      time.Now(),
	})

	assert.Empty(t, actionsOfType(actions, ActionStartIrrigation))
}

func TestEvaluate_NoIrrigationWithoutSettings(t *testing.T) {
	e := newTestEvaluator()

	actions := e.Evaluate(Input{
		Reading: reading(10, 22, 50),
		Now:     time.Now(),
	})

	assert.Empty(t, actionsOfType(actions, ActionStartIrrigation))
}

func TestEvaluate_IrrigationCooldown(t *testing.T) {
	e := newTestEvaluator()
	now := time.Now()

	recent := now.Add(-30 * time.Minute)
	actions := e.Evaluate(Input{
		Reading:   reading(25, 22, 50),
		Settings:  autoSettings(30, 20),
		LastStart: &recent,
		Now:       now,
	})
	assert.Empty(t, actionsOfType(actions, ActionStartIrrigation),
		"start within the last 120 minutes must suppress the trigger")

	old := now.Add(-121 * time.Minute)
	actions = e.Evaluate(Input{
		Reading:   reading(25, 22, 50),
		Settings:  autoSettings(30, 20),
		LastStart: &old,
		Now:       now,
	})
	assert.Len(t, actionsOfType(actions, ActionStartIrrigation), 1)
}

func TestEvaluate_BlightConditions(t *testing.T) {
	e := newTestEvaluator()

	actions := e.Evaluate(Input{
		Reading: reading(50, 20, 85),
		Now:     time.Now(),
	})

	alerts := actionsOfType(actions, ActionDiseaseAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, DiseaseBlight, alerts[0].DiseaseName)
	assert.Equal(t, domain.RiskHigh, alerts[0].RiskLevel)
	assert.Contains(t, alerts[0].Message, "High risk of Blight")
}

func TestEvaluate_BlightTemperatureBounds(t *testing.T) {
	e := newTestEvaluator()

	for _, temp := range []float64{15, 25} {
		actions := e.Evaluate(Input{Reading: reading(50, temp, 85), Now: time.Now()})
		assert.NotEmpty(t, actionsOfType(actions, ActionDiseaseAlert), "temp %v is inside the band", temp)
	}
	for _, temp := range []float64{14.9, 25.1} {
		actions := e.Evaluate(Input{Reading: reading(50, temp, 85), Now: time.Now()})
		for _, a := range actionsOfType(actions, ActionDiseaseAlert) {
			assert.NotEqual(t, DiseaseBlight, a.DiseaseName, "temp %v is outside the band", temp)
		}
	}
}

func TestEvaluate_RootRotConditions(t *testing.T) {
	e := newTestEvaluator()

	actions := e.Evaluate(Input{
		Reading: reading(85, 28, 50),
		Now:     time.Now(),
	})

	alerts := actionsOfType(actions, ActionDiseaseAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, DiseaseRootRot, alerts[0].DiseaseName)
	assert.Equal(t, domain.RiskMedium, alerts[0].RiskLevel)
}

func TestEvaluate_PowderyMildewConditions(t *testing.T) {
	e := newTestEvaluator()

	actions := e.Evaluate(Input{
		Reading: reading(50, 23, 75),
		Now:     time.Now(),
	})

	alerts := actionsOfType(actions, ActionDiseaseAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, DiseasePowderyMildew, alerts[0].DiseaseName)
}

func TestEvaluate_RulesAreIndependent(t *testing.T) {
	e := newTestEvaluator()

	// 85% moisture + 85% humidity + 20°C satisfies all three disease rules.
	actions := e.Evaluate(Input{
		Reading: reading(85, 20, 85),
		Now:     time.Now(),
	})

	names := map[string]bool{}
	for _, a := range actionsOfType(actions, ActionDiseaseAlert) {
		names[a.DiseaseName] = true
	}
	assert.True(t, names[DiseaseBlight])
	assert.True(t, names[DiseaseRootRot])
	assert.True(t, names[DiseasePowderyMildew])
}

func TestEvaluate_NormalConditionsNoActions(t *testing.T) {
	e := newTestEvaluator()

	actions := e.Evaluate(Input{
		Reading:  reading(50, 28, 60),
		Settings: autoSettings(30, 20),
		Now:      time.Now(),
	})

	assert.Empty(t, actions)
}
