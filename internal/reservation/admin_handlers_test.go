package reservation

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

type stubAdminQueries struct {
	dbgen.Querier
	listParams   dbgen.ListReservationsParams
	reservations []dbgen.Reservation
	updated      dbgen.UpdateReservationStatusParams
	deleted      []pgtype.UUID
}

func (s *stubAdminQueries) ListReservations(_ context.Context, arg dbgen.ListReservationsParams) ([]dbgen.Reservation, error) {
	s.listParams = arg
	return s.reservations, nil
}

func (s *stubAdminQueries) CountReservations(_ context.Context, _ string) (int64, error) {
	return int64(len(s.reservations)), nil
}

func (s *stubAdminQueries) UpdateReservationStatus(_ context.Context, arg dbgen.UpdateReservationStatusParams) (dbgen.Reservation, error) {
	s.updated = arg
	return dbgen.Reservation{ID: arg.ID, Status: arg.Status, Email: "alice@example.com"}, nil
}

func (s *stubAdminQueries) DeleteReservation(_ context.Context, id pgtype.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestAdminListFiltersByStatus(t *testing.T) {
	q := &stubAdminQueries{reservations: []dbgen.Reservation{{Status: dbgen.ReservationStatusPENDING}}}
	h := &AdminHandler{Q: q}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations?status=pending", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "PENDING", q.listParams.Status)
}

func TestAdminListRejectsUnknownStatus(t *testing.T) {
	h := &AdminHandler{Q: &stubAdminQueries{}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations?status=bogus", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUpdateStatus(t *testing.T) {
	q := &stubAdminQueries{}
	h := &AdminHandler{Q: q}
	router := chi.NewRouter()
	router.Patch("/api/v1/admin/reservations/{id}", h.UpdateStatus)

	body := bytes.NewBufferString(`{"status":"confirmed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/reservations/0d9b945d-bd9f-4e35-a29e-8769f133b32c", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, dbgen.ReservationStatusCONFIRMED, q.updated.Status)
}

func TestAdminUpdateStatusRejectsUnknownValue(t *testing.T) {
	h := &AdminHandler{Q: &stubAdminQueries{}}
	router := chi.NewRouter()
	router.Patch("/api/v1/admin/reservations/{id}", h.UpdateStatus)

	body := bytes.NewBufferString(`{"status":"SHIPPED"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/reservations/0d9b945d-bd9f-4e35-a29e-8769f133b32c", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDelete(t *testing.T) {
	q := &stubAdminQueries{}
	h := &AdminHandler{Q: q}
	router := chi.NewRouter()
	router.Delete("/api/v1/admin/reservations/{id}", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/reservations/0d9b945d-bd9f-4e35-a29e-8769f133b32c", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, q.deleted, 1)
}
