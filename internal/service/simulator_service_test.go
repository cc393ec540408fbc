package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

func TestGenerateContinuous_Backfills48Points(t *testing.T) {
	f := newSensorServiceFixture(t)
	sim := NewSimulatorService(f.readings, f.svc, zap.NewNop())
	sim.now = func() time.Time { return f.now }

	var timestamps []time.Time
	f.readings.On("InsertReading", mock.Anything, mock.MatchedBy(func(r *domain.SensorReading) bool {
		timestamps = append(timestamps, r.Timestamp)
		return r.UserID == 1 &&
			r.SoilMoisture >= 20 && r.SoilMoisture <= 80 &&
			r.Temperature >= 10 && r.Temperature <= 40 &&
			r.Humidity >= 40 && r.Humidity <= 95 &&
			r.PHLevel >= 5 && r.PHLevel <= 8
	})).Return(int64(1), nil)

	count, err := sim.GenerateContinuous(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 48, count)
	require.Len(t, timestamps, 48)

	// Half-hour spacing across the last 24 hours.
	assert.Equal(t, f.now.Add(-24*time.Hour), timestamps[0])
	for i := 1; i < len(timestamps); i++ {
		assert.Equal(t, 30*time.Minute, timestamps[i].Sub(timestamps[i-1]))
	}

	// Backfill bypasses the rule engine entirely.
	f.irrigation.AssertNotCalled(t, "GetSettings", mock.Anything, mock.Anything)
}

func TestSimulateCondition_DroughtRunsIngestionPath(t *testing.T) {
	f := newSensorServiceFixture(t)
	sim := NewSimulatorService(f.readings, f.svc, zap.NewNop())
	sim.now = func() time.Time { return f.now }

	f.readings.On("InsertReading", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.expectNoIrrigationHistory()
	f.irrigation.On("InsertLogEntry", mock.Anything, mock.Anything).Return(int64(10), nil)
	f.notifications.On("CreateNotification", mock.Anything, mock.Anything).Return(int64(1), nil)

	reading, actions, err := sim.SimulateCondition(context.Background(), 1, ConditionDrought)
	require.NoError(t, err)

	// Drought preset sits well below the 30% default threshold, so the
	// irrigation rule fires through the normal ingestion path.
	assert.InDelta(t, 20, reading.SoilMoisture, 5)
	require.NotEmpty(t, actions)
	f.irrigation.AssertCalled(t, "InsertLogEntry", mock.Anything, mock.Anything)
}

func TestSimulateCondition_UnknownFallsBackToNormal(t *testing.T) {
	f := newSensorServiceFixture(t)
	sim := NewSimulatorService(f.readings, f.svc, zap.NewNop())
	sim.now = func() time.Time { return f.now }

	f.readings.On("InsertReading", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.expectNoIrrigationHistory()
	// Normal humidity can brush the Powdery Mildew band; tolerate it.
	f.diseases.On("GetDiseaseByName", mock.Anything, mock.Anything).
		Return(nil, domain.NotFound("disease")).Maybe()

	reading, _, err := sim.SimulateCondition(context.Background(), 1, "volcano")
	require.NoError(t, err)
	assert.InDelta(t, 50, reading.SoilMoisture, 10)
	f.irrigation.AssertNotCalled(t, "InsertLogEntry", mock.Anything, mock.Anything)
}
