package httpapi

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/service"
)

// SimulatorHandler demo data generation endpoints.
type SimulatorHandler struct {
	simulator *service.SimulatorService
	logger    *zap.Logger
}

func NewSimulatorHandler(simulator *service.SimulatorService, logger *zap.Logger) *SimulatorHandler {
	return &SimulatorHandler{simulator: simulator, logger: logger}
}

func (h *SimulatorHandler) GenerateContinuous(w http.ResponseWriter, r *http.Request) {
	count, err := h.simulator.GenerateContinuous(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("Generated 24 hours of sensor data", map[string]any{
		"records_created": count,
	}))
}

func (h *SimulatorHandler) SimulateCondition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Condition string `json:"condition"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}
	if req.Condition == "" {
		req.Condition = service.ConditionNormal
	}

	reading, actions, err := h.simulator.SimulateCondition(r.Context(), userIDFrom(r.Context()), req.Condition)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg(fmt.Sprintf("Simulated %s conditions", req.Condition), map[string]any{
		"reading": reading,
		"actions": actions,
	}))
}
