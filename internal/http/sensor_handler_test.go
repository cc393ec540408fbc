package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/service"
)

// emptyReadingsRepo is a ReadingsRepository for a farm with no data yet.
type emptyReadingsRepo struct{}

func (emptyReadingsRepo) InsertReading(context.Context, *domain.SensorReading) (int64, error) {
	return 0, nil
}

func (emptyReadingsRepo) LatestReading(context.Context, int64) (*domain.SensorReading, error) {
	return nil, domain.NotFound("sensor reading")
}

func (emptyReadingsRepo) ReadingHistory(context.Context, int64, int, int) ([]domain.SensorReading, error) {
	return nil, nil
}

func (emptyReadingsRepo) ReadingStats(context.Context, int64, int) (*domain.SensorStats, error) {
	return nil, domain.NotFound("sensor stats")
}

func TestSensorLatest_NoDataIsSuccessWithNullPayload(t *testing.T) {
	sensors := service.NewSensorService(emptyReadingsRepo{}, nil, nil, nil, nil, nil, nil, nil, zap.NewNop())
	handler := NewSensorHandler(sensors, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sensors/latest", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, int64(1)))
	rec := httptest.NewRecorder()
	handler.Latest(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"No sensor data available","data":null}`, rec.Body.String())
}
