package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/service"
)

// SensorHandler sensor reading ingestion and queries.
type SensorHandler struct {
	sensors *service.SensorService
	logger  *zap.Logger
}

func NewSensorHandler(sensors *service.SensorService, logger *zap.Logger) *SensorHandler {
	return &SensorHandler{sensors: sensors, logger: logger}
}

func (h *SensorHandler) AddReading(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SoilMoisture   float64 `json:"soil_moisture"`
		Temperature    float64 `json:"temperature"`
		Humidity       float64 `json:"humidity"`
		LightIntensity float64 `json:"light_intensity"`
		PHLevel        float64 `json:"ph_level"`
	}
	req.PHLevel = 7.0
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}

	reading := &domain.SensorReading{
		UserID:         userIDFrom(r.Context()),
		SoilMoisture:   req.SoilMoisture,
		Temperature:    req.Temperature,
		Humidity:       req.Humidity,
		LightIntensity: req.LightIntensity,
		PHLevel:        req.PHLevel,
	}
	actions, err := h.sensors.AddReading(r.Context(), reading)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, OkMsg("Reading recorded", map[string]any{
		"reading": reading,
		"actions": actions,
	}))
}

func (h *SensorHandler) Latest(w http.ResponseWriter, r *http.Request) {
	reading, err := h.sensors.Latest(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		// A farm with no readings yet is not an error condition.
		if domain.IsNotFound(err) {
			writeJSON(w, http.StatusOK, OkMsg("No sensor data available", json.RawMessage("null")))
			return
		}
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(reading))
}

func (h *SensorHandler) History(w http.ResponseWriter, r *http.Request) {
	hours := parseInt(r.URL.Query().Get("hours"), 24)
	limit := parseInt(r.URL.Query().Get("limit"), 100)

	readings, err := h.sensors.History(r.Context(), userIDFrom(r.Context()), hours, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"readings": readings,
		"count":    len(readings),
	}))
}

func (h *SensorHandler) Stats(w http.ResponseWriter, r *http.Request) {
	hours := parseInt(r.URL.Query().Get("hours"), 24)

	stats, err := h.sensors.Stats(r.Context(), userIDFrom(r.Context()), hours)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(stats))
}
