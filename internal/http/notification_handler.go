package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/service"
)

// NotificationHandler unified inbox endpoints.
type NotificationHandler struct {
	notifications *service.NotificationService
	logger        *zap.Logger
}

func NewNotificationHandler(notifications *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	items, err := h.notifications.List(r.Context(), userIDFrom(r.Context()), limit, unreadOnly)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"notifications": items,
		"count":         len(items),
	}))
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.UnreadCount(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"count": count}))
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}

	if err := h.notifications.MarkRead(r.Context(), userIDFrom(r.Context()), req.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("Notification marked as read", nil))
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(r.Context(), userIDFrom(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("All notifications marked as read", nil))
}

// Delete serves DELETE /api/v1/notifications/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseInt64(strings.TrimPrefix(r.URL.Path, "/api/v1/notifications/"))
	if err := h.notifications.Delete(r.Context(), userIDFrom(r.Context()), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("Notification deleted", nil))
}
