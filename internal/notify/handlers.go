package notify

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Vexflip/skiset-reservation/internal/common"
)

// Handler exposes the admin email endpoints.
type Handler struct {
	Client TaskEnqueuer
}

type broadcastRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Broadcast handles POST /api/v1/admin/emails/broadcast. The send itself
// happens asynchronously on the worker.
func (h *Handler) Broadcast(w http.ResponseWriter, r *http.Request) {
	if h.Client == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "task queue not configured", nil)
		return
	}
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	req.Subject = strings.TrimSpace(req.Subject)
	req.Body = strings.TrimSpace(req.Body)
	if req.Subject == "" || req.Body == "" {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "subject and body are required", nil)
		return
	}
	task, err := NewBroadcastEmailTask(req.Subject, req.Body)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not build broadcast task", nil)
		return
	}
	if _, err := h.Client.EnqueueContext(r.Context(), task); err != nil {
		common.JSONError(w, http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE", "could not enqueue broadcast", nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]string{"status": "queued"}})
}
