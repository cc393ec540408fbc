package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/service"
)

// WeatherHandler forecast and weather alert endpoints.
type WeatherHandler struct {
	weather *service.WeatherService
	logger  *zap.Logger
}

func NewWeatherHandler(weather *service.WeatherService, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{weather: weather, logger: logger}
}

func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	days := parseInt(r.URL.Query().Get("days"), 7)

	forecast, location, err := h.weather.Forecast(r.Context(), userIDFrom(r.Context()), days)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"location": location,
		"forecast": forecast,
	}))
}

func (h *WeatherHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := h.weather.Generate(r.Context(), userIDFrom(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("Weather data generated successfully", nil))
}

func (h *WeatherHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.weather.Alerts(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	}))
}
