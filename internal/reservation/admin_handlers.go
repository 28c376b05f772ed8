package reservation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/Vexflip/skiset-reservation/internal/common"
	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
	"github.com/Vexflip/skiset-reservation/internal/events"
)

// AdminHandler exposes back-office reservation management endpoints.
type AdminHandler struct {
	Q      dbgen.Querier
	Events *events.Bus
}

var validStatuses = map[dbgen.ReservationStatus]bool{
	dbgen.ReservationStatusPENDING:   true,
	dbgen.ReservationStatusCONFIRMED: true,
	dbgen.ReservationStatusCANCELLED: true,
	dbgen.ReservationStatusCOMPLETED: true,
}

// List returns reservations, newest first, optionally filtered by status.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "reservation queries not configured", nil)
		return
	}
	status := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && !validStatuses[dbgen.ReservationStatus(status)] {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown status filter", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 50)
	rows, err := h.Q.ListReservations(r.Context(), dbgen.ListReservationsParams{
		Status: status,
		Limit:  int32(perPage),
		Offset: int32((page - 1) * perPage),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list reservations", nil)
		return
	}
	total, err := h.Q.CountReservations(r.Context(), status)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to count reservations", nil)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, res := range rows {
		out = append(out, reservationJSON(res, nil))
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": out,
		"meta": common.Pagination{Page: page, PerPage: perPage, TotalItems: int(total)},
	})
}

type statusPayload struct {
	Status string `json:"status"`
}

// UpdateStatus transitions a reservation to a new status.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "reservation queries not configured", nil)
		return
	}
	id, err := toUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid reservation id", nil)
		return
	}
	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	status := dbgen.ReservationStatus(strings.ToUpper(strings.TrimSpace(payload.Status)))
	if !validStatuses[status] {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown status", nil)
		return
	}
	updated, err := h.Q.UpdateReservationStatus(r.Context(), dbgen.UpdateReservationStatusParams{ID: id, Status: status})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "reservation not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update reservation", nil)
		return
	}
	if h.Events != nil {
		payload := map[string]any{
			"reservationId": uuidString(updated.ID),
			"email":         updated.Email,
			"status":        string(updated.Status),
		}
		_, _ = h.Events.Emit(r.Context(), events.TopicReservationStatusChanged, updated.ID, payload)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": reservationJSON(updated, nil)})
}

// Delete removes a reservation and its items.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "reservation queries not configured", nil)
		return
	}
	id, err := toUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid reservation id", nil)
		return
	}
	if err := h.Q.DeleteReservation(r.Context(), id); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete reservation", nil)
		return
	}
	if h.Events != nil {
		_, _ = h.Events.Emit(r.Context(), events.TopicReservationDeleted, id, map[string]any{
			"reservationId": uuidString(id),
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

// Customers aggregates reservation contacts into a customer list.
func (h *AdminHandler) Customers(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "reservation queries not configured", nil)
		return
	}
	rows, err := h.Q.ListCustomers(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list customers", nil)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, c := range rows {
		entry := map[string]any{
			"email":        c.Email,
			"firstName":    c.FirstName,
			"lastName":     c.LastName,
			"phone":        c.Phone,
			"reservations": c.ReservationCount,
			"totalSpent":   c.TotalSpent,
		}
		if c.LastReservationAt.Valid {
			entry["lastReservationAt"] = c.LastReservationAt.Time
		}
		out = append(out, entry)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}
