package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/Vexflip/skiset-reservation/internal/common"
	db "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

type stubQueries struct {
	admin   db.Admin
	getErr  error
	created *db.CreateAdminParams
}

func (s *stubQueries) GetAdminByEmail(_ context.Context, _ string) (db.Admin, error) {
	return s.admin, s.getErr
}

func (s *stubQueries) GetAdminByID(_ context.Context, _ pgtype.UUID) (db.Admin, error) {
	return s.admin, s.getErr
}

func (s *stubQueries) CreateAdmin(_ context.Context, arg db.CreateAdminParams) (db.Admin, error) {
	s.created = &arg
	return db.Admin{ID: pgtype.UUID{Bytes: [16]byte{2}, Valid: true}, Email: arg.Email, PasswordHash: arg.PasswordHash}, nil
}

func newTestService(t *testing.T, q Querier) *Service {
	t.Helper()
	svc, err := NewService(Config{Queries: q, Secret: "test-secret"})
	require.NoError(t, err)
	return svc
}

func testAdmin(t *testing.T, password string) db.Admin {
	t.Helper()
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	require.NoError(t, err)
	return db.Admin{
		ID:           pgtype.UUID{Bytes: [16]byte{1}, Valid: true},
		Email:        "admin@skiset.com",
		PasswordHash: hash,
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	q := &stubQueries{admin: testAdmin(t, "super-secret-pass")}
	svc := newTestService(t, q)

	result, err := svc.Login(context.Background(), "ADMIN@skiset.com", "super-secret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	adminID, err := svc.ParseAccessToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.Admin.ID, adminID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	q := &stubQueries{admin: testAdmin(t, "super-secret-pass")}
	svc := newTestService(t, q)

	_, err := svc.Login(context.Background(), "admin@skiset.com", "wrong")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	q := &stubQueries{getErr: pgx.ErrNoRows}
	svc := newTestService(t, q)

	_, err := svc.Login(context.Background(), "ghost@skiset.com", "whatever")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	q := &stubQueries{admin: testAdmin(t, "super-secret-pass")}
	svc := newTestService(t, q)
	svc.WithNow(func() time.Time { return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) })

	result, err := svc.Login(context.Background(), "admin@skiset.com", "super-secret-pass")
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC) })
	_, err = svc.ParseAccessToken(result.Token)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t, &stubQueries{})
	_, err := svc.ParseAccessToken("not.a.token")
	require.Error(t, err)
}

func TestCreateAdminHashesPassword(t *testing.T) {
	q := &stubQueries{}
	svc := newTestService(t, q)

	_, err := svc.CreateAdmin(context.Background(), "New@Skiset.com", "long-enough-pass")
	require.NoError(t, err)
	require.NotNil(t, q.created)
	require.Equal(t, "new@skiset.com", q.created.Email)
	require.NotEqual(t, "long-enough-pass", q.created.PasswordHash)

	match, err := argon2id.ComparePasswordAndHash("long-enough-pass", q.created.PasswordHash)
	require.NoError(t, err)
	require.True(t, match)
}

func TestCreateAdminRejectsShortPassword(t *testing.T) {
	svc := newTestService(t, &stubQueries{})
	_, err := svc.CreateAdmin(context.Background(), "a@b.com", "short")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestRequireAdminMiddleware(t *testing.T) {
	q := &stubQueries{admin: testAdmin(t, "super-secret-pass")}
	svc := newTestService(t, q)
	result, err := svc.Login(context.Background(), "admin@skiset.com", "super-secret-pass")
	require.NoError(t, err)

	mw := Middleware{Service: svc}
	var seenID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = common.AdminID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+result.Token)
	rec := httptest.NewRecorder()
	mw.RequireAdmin(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, result.Admin.ID, seenID)

	rec = httptest.NewRecorder()
	mw.RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
