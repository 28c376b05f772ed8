package promo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Vexflip/skiset-reservation/internal/common"
	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

// Handler exposes promo code endpoints: public validation plus
// administrative management.
type Handler struct {
	Q        dbgen.Querier
	Svc      *Service
	Validate *validator.Validate
}

type promoPayload struct {
	Code          string     `json:"code" validate:"required"`
	DiscountType  string     `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue float64    `json:"discountValue" validate:"gte=0"`
	MaxUses       *int32     `json:"maxUses" validate:"omitempty,gt=0"`
	IsActive      *bool      `json:"isActive"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

type validateRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

// ValidateCode evaluates a code for a customer without consuming usage.
func (h *Handler) ValidateCode(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promo service not configured", nil)
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
	}
	discount, err := h.Svc.Preview(r.Context(), req.Code, req.Subtotal)
	if err != nil {
		writeRedemptionError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"code":     discount.Code,
		"discount": discount.Amount,
		"subtotal": req.Subtotal,
		"total":    req.Subtotal - discount.Amount,
	}})
}

// List returns all promo codes with their redemption counts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promo queries not configured", nil)
		return
	}
	codes, err := h.Q.ListPromoCodes(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list promo codes", nil)
		return
	}
	out := make([]map[string]any, 0, len(codes))
	for _, c := range codes {
		out = append(out, promoCodeJSON(dbgen.PromoCode{
			ID:            c.ID,
			Code:          c.Code,
			DiscountType:  c.DiscountType,
			DiscountValue: c.DiscountValue,
			MaxUses:       c.MaxUses,
			CurrentUses:   c.CurrentUses,
			IsActive:      c.IsActive,
			ExpiresAt:     c.ExpiresAt,
			CreatedAt:     c.CreatedAt,
		}, c.ReservationCount))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Create inserts a new promo code.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promo queries not configured", nil)
		return
	}
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	created, err := h.Q.CreatePromoCode(r.Context(), dbgen.CreatePromoCodeParams{
		Code:          strings.TrimSpace(payload.Code),
		DiscountType:  dbgen.DiscountType(payload.DiscountType),
		DiscountValue: payload.DiscountValue,
		MaxUses:       toInt4(payload.MaxUses),
		IsActive:      payload.IsActive == nil || *payload.IsActive,
		ExpiresAt:     toTimestamptz(payload.ExpiresAt),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			common.JSONError(w, http.StatusConflict, "CONFLICT", "promo code already exists", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create promo code", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": promoCodeJSON(created, 0)})
}

// Update mutates an existing promo code identified by id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promo queries not configured", nil)
		return
	}
	id, err := parsePathUUID(r, "id")
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid promo code id", nil)
		return
	}
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	updated, err := h.Q.UpdatePromoCode(r.Context(), dbgen.UpdatePromoCodeParams{
		ID:            id,
		Code:          strings.TrimSpace(payload.Code),
		DiscountType:  dbgen.DiscountType(payload.DiscountType),
		DiscountValue: payload.DiscountValue,
		MaxUses:       toInt4(payload.MaxUses),
		IsActive:      payload.IsActive == nil || *payload.IsActive,
		ExpiresAt:     toTimestamptz(payload.ExpiresAt),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "promo code not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update promo code", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": promoCodeJSON(updated, 0)})
}

// Delete removes a promo code. Reservations that already used it keep
// their persisted pricing; only the foreign key is nulled.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Q == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promo queries not configured", nil)
		return
	}
	id, err := parsePathUUID(r, "id")
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid promo code id", nil)
		return
	}
	if err := h.Q.DeletePromoCode(r.Context(), id); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete promo code", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request) (promoPayload, bool) {
	var payload promoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return promoPayload{}, false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return promoPayload{}, false
		}
	}
	return payload, true
}

func writeRedemptionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCode):
		common.JSONError(w, http.StatusBadRequest, "INVALID_PROMO", "Invalid promo code", nil)
	case errors.Is(err, ErrExpired):
		common.JSONError(w, http.StatusBadRequest, "PROMO_EXPIRED", "Promo code expired", nil)
	case errors.Is(err, ErrUsageLimitReached):
		common.JSONError(w, http.StatusBadRequest, "PROMO_EXHAUSTED", "Promo code usage limit reached", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to evaluate promo code", nil)
	}
}

func promoCodeJSON(p dbgen.PromoCode, reservations int64) map[string]any {
	out := map[string]any{
		"id":            uuid.UUID(p.ID.Bytes).String(),
		"code":          p.Code,
		"discountType":  p.DiscountType,
		"discountValue": p.DiscountValue,
		"currentUses":   p.CurrentUses,
		"isActive":      p.IsActive,
		"reservations":  reservations,
	}
	if p.MaxUses.Valid {
		out["maxUses"] = p.MaxUses.Int32
	}
	if p.ExpiresAt.Valid {
		out["expiresAt"] = p.ExpiresAt.Time
	}
	if p.CreatedAt.Valid {
		out["createdAt"] = p.CreatedAt.Time
	}
	return out
}

func toInt4(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

func toTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func parsePathUUID(r *http.Request, key string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, key)))
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
