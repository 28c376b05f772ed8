package promo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

type stubHandlerQueries struct {
	dbgen.Querier
	created dbgen.CreatePromoCodeParams
	promo   dbgen.PromoCode
	getErr  error
}

func (s *stubHandlerQueries) CreatePromoCode(_ context.Context, arg dbgen.CreatePromoCodeParams) (dbgen.PromoCode, error) {
	s.created = arg
	return dbgen.PromoCode{
		Code:          arg.Code,
		DiscountType:  arg.DiscountType,
		DiscountValue: arg.DiscountValue,
		MaxUses:       arg.MaxUses,
		IsActive:      arg.IsActive,
		ExpiresAt:     arg.ExpiresAt,
	}, nil
}

func (s *stubHandlerQueries) GetPromoCodeByCode(_ context.Context, _ string) (dbgen.PromoCode, error) {
	return s.promo, s.getErr
}

func (s *stubHandlerQueries) ListPromoCodes(_ context.Context) ([]dbgen.ListPromoCodesRow, error) {
	return []dbgen.ListPromoCodesRow{}, nil
}

func TestValidateCodeHappyPath(t *testing.T) {
	h := &Handler{
		Svc:      &Service{Q: &stubQuerier{promo: activePromo()}, Now: fixedNow},
		Validate: validator.New(),
	}
	body := bytes.NewBufferString(`{"code":"WINTER10","subtotal":200}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promocodes/validate", body)
	rec := httptest.NewRecorder()
	h.ValidateCode(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			Code     string  `json:"code"`
			Discount float64 `json:"discount"`
			Total    float64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "WINTER10", resp.Data.Code)
	require.Equal(t, 20.0, resp.Data.Discount)
	require.Equal(t, 180.0, resp.Data.Total)
}

func TestValidateCodeUnknown(t *testing.T) {
	h := &Handler{
		Svc:      &Service{Q: &stubQuerier{getErr: pgx.ErrNoRows}, Now: fixedNow},
		Validate: validator.New(),
	}
	body := bytes.NewBufferString(`{"code":"NOPE","subtotal":200}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promocodes/validate", body)
	rec := httptest.NewRecorder()
	h.ValidateCode(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid promo code")
}

func TestCreatePromoCode(t *testing.T) {
	q := &stubHandlerQueries{}
	h := &Handler{Q: q, Validate: validator.New()}
	body := bytes.NewBufferString(`{"code":"spring20","discountType":"PERCENTAGE","discountValue":20,"maxUses":100}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/promocodes", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "spring20", q.created.Code)
	require.Equal(t, dbgen.DiscountTypePERCENTAGE, q.created.DiscountType)
	require.True(t, q.created.MaxUses.Valid)
	require.Equal(t, int32(100), q.created.MaxUses.Int32)
	require.True(t, q.created.IsActive)
}

func TestCreatePromoCodeRejectsUnknownType(t *testing.T) {
	h := &Handler{Q: &stubHandlerQueries{}, Validate: validator.New()}
	body := bytes.NewBufferString(`{"code":"X","discountType":"GIFT","discountValue":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/promocodes", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
