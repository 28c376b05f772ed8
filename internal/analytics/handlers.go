package analytics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Vexflip/skiset-reservation/internal/common"
)

// Handler exposes the admin analytics endpoint.
type Handler struct {
	Svc *Service
}

// Overview handles GET /api/v1/admin/analytics/overview?range=30.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "analytics service not configured", nil)
		return
	}
	rangeDays := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("range")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "range must be a positive number of days", nil)
			return
		}
		rangeDays = parsed
	}
	overview, err := h.Svc.OverviewRange(r.Context(), rangeDays)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to compute analytics", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": overview})
}
