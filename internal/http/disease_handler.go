package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/service"
)

// DiseaseHandler crop disease catalog and disease alerts.
type DiseaseHandler struct {
	diseases *service.DiseaseService
	logger   *zap.Logger
}

func NewDiseaseHandler(diseases *service.DiseaseService, logger *zap.Logger) *DiseaseHandler {
	return &DiseaseHandler{diseases: diseases, logger: logger}
}

func (h *DiseaseHandler) List(w http.ResponseWriter, r *http.Request) {
	diseases, err := h.diseases.List(r.Context(), r.URL.Query().Get("crop_type"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"diseases": diseases,
		"count":    len(diseases),
	}))
}

// Get serves /api/v1/diseases/{id}.
func (h *DiseaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := parseInt64(strings.TrimPrefix(r.URL.Path, "/api/v1/diseases/"))
	disease, err := h.diseases.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(disease))
}

func (h *DiseaseHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	alerts, err := h.diseases.Alerts(r.Context(), userIDFrom(r.Context()), unreadOnly)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	}))
}

func (h *DiseaseHandler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}

	if err := h.diseases.MarkAlertRead(r.Context(), userIDFrom(r.Context()), req.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("Alert marked as read", nil))
}
