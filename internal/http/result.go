package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// Result is the envelope every endpoint responds with.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

func OkMsg(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

// writeError maps domain errors onto HTTP statuses. Anything not in the
// taxonomy is a 500 with a generic message; the real error goes to the log.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		notFound   *domain.NotFoundError
		auth       *domain.AuthError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, Fail(validation.Msg))
	case errors.As(err, &auth):
		writeJSON(w, http.StatusUnauthorized, Fail(auth.Msg))
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, Fail(notFound.Error()))
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, Fail(conflict.Msg))
	default:
		logger.Error("Request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Internal server error"))
	}
}
