package reservation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Vexflip/skiset-reservation/internal/common"
	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
	"github.com/Vexflip/skiset-reservation/internal/obs"
	"github.com/Vexflip/skiset-reservation/internal/promo"
)

// Handler exposes the public reservation endpoints.
type Handler struct {
	Q        dbgen.Querier
	Svc      *Service
	Validate *validator.Validate
}

// Create accepts a reservation request, prices it and persists it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "reservation service not configured", nil)
		return
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(in); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
	}
	out, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeCreateError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": out})
}

// Get returns a single reservation with its equipment lines.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "reservation queries not configured", nil)
		return
	}
	id, err := toUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid reservation id", nil)
		return
	}
	res, err := h.Q.GetReservationByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "reservation not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load reservation", nil)
		return
	}
	items, err := h.Q.ListReservationItems(r.Context(), res.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load reservation items", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": reservationJSON(res, items)})
}

func writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoItems):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, ErrInvalidDates):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, ErrProductNotFound):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, promo.ErrInvalidCode):
		common.JSONError(w, http.StatusBadRequest, "INVALID_PROMO", "Invalid promo code", nil)
	case errors.Is(err, promo.ErrExpired):
		common.JSONError(w, http.StatusBadRequest, "PROMO_EXPIRED", "Promo code expired", nil)
	case errors.Is(err, promo.ErrUsageLimitReached):
		common.JSONError(w, http.StatusBadRequest, "PROMO_EXHAUSTED", "Promo code usage limit reached", nil)
	default:
		if obs.ReservationsCreatedTotal != nil {
			obs.ReservationsCreatedTotal.WithLabelValues("error").Inc()
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create reservation", nil)
	}
}

func reservationJSON(res dbgen.Reservation, items []dbgen.ReservationItem) map[string]any {
	lines := make([]map[string]any, 0, len(items))
	for _, it := range items {
		line := map[string]any{
			"id":       uuidString(it.ID),
			"category": it.Category,
			"price":    it.Price,
			"quantity": it.Quantity,
		}
		if it.ProductID.Valid {
			line["productId"] = uuidString(it.ProductID)
		}
		addText(line, "productName", it.ProductName)
		addText(line, "image", it.Image)
		addText(line, "bootsImage", it.BootsImage)
		addText(line, "helmetImage", it.HelmetImage)
		addText(line, "options", it.Options)
		addText(line, "size", it.Size)
		addText(line, "level", it.Level)
		addText(line, "surname", it.Surname)
		addText(line, "sex", it.Sex)
		addText(line, "height", it.Height)
		addText(line, "weight", it.Weight)
		addText(line, "shoeSize", it.ShoeSize)
		if it.Age.Valid {
			line["age"] = it.Age.Int32
		}
		lines = append(lines, line)
	}
	out := map[string]any{
		"id":             uuidString(res.ID),
		"firstName":      res.FirstName,
		"lastName":       res.LastName,
		"email":          res.Email,
		"phone":          res.Phone,
		"status":         res.Status,
		"totalPrice":     res.TotalPrice,
		"discountAmount": res.DiscountAmount,
		"finalPrice":     res.FinalPrice,
		"items":          lines,
	}
	if res.StartDate.Valid {
		out["startDate"] = res.StartDate.Time.Format("2006-01-02")
	}
	if res.EndDate.Valid {
		out["endDate"] = res.EndDate.Time.Format("2006-01-02")
	}
	if res.Notes.Valid {
		out["notes"] = res.Notes.String
	}
	if res.PromoCodeID.Valid {
		out["promoCodeId"] = uuidString(res.PromoCodeID)
	}
	if res.CreatedAt.Valid {
		out["createdAt"] = res.CreatedAt.Time
	}
	return out
}

func addText(m map[string]any, key string, t pgtype.Text) {
	if t.Valid {
		m[key] = t.String
	}
}
