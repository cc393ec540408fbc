package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/service"
)

// IrrigationHandler manual irrigation control, settings and history.
type IrrigationHandler struct {
	irrigation *service.IrrigationService
	logger     *zap.Logger
}

func NewIrrigationHandler(irrigation *service.IrrigationService, logger *zap.Logger) *IrrigationHandler {
	return &IrrigationHandler{irrigation: irrigation, logger: logger}
}

func (h *IrrigationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Duration int `json:"duration"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}

	entry, err := h.irrigation.Start(r.Context(), userIDFrom(r.Context()), req.Duration)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("Irrigation started", map[string]any{
		"duration": entry.Duration,
	}))
}

func (h *IrrigationHandler) Stop(w http.ResponseWriter, r *http.Request) {
	entry, err := h.irrigation.Stop(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("Irrigation stopped", map[string]any{
		"duration": entry.Duration,
	}))
}

func (h *IrrigationHandler) Status(w http.ResponseWriter, r *http.Request) {
	session, err := h.irrigation.Status(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"is_active":       session != nil,
		"current_session": session,
	}))
}

func (h *IrrigationHandler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.irrigation.GetSettings(r.Context(), userIDFrom(r.Context()))
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(settings))
	case http.MethodPut, http.MethodPost:
		var patch domain.SettingsPatch
		if err := readBodyJSON(r, 1<<20, &patch); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
			return
		}
		settings, err := h.irrigation.UpdateSettings(r.Context(), userIDFrom(r.Context()), patch)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMsg("Settings updated", settings))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *IrrigationHandler) History(w http.ResponseWriter, r *http.Request) {
	days := parseInt(r.URL.Query().Get("days"), 7)
	limit := parseInt(r.URL.Query().Get("limit"), 50)

	entries, err := h.irrigation.History(r.Context(), userIDFrom(r.Context()), days, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"history": entries,
		"count":   len(entries),
	}))
}

func (h *IrrigationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days := parseInt(r.URL.Query().Get("days"), 30)

	stats, err := h.irrigation.Stats(r.Context(), userIDFrom(r.Context()), days)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(stats))
}
