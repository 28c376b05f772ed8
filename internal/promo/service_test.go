package promo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

type stubQuerier struct {
	promo        dbgen.PromoCode
	getErr       error
	incremented  int
	incrementRes int64
	incrementErr error
}

// lookup mirrors the unique-index query: only a byte-for-byte match on the
// stored code returns the row.
func (s *stubQuerier) lookup(code string) (dbgen.PromoCode, error) {
	if s.getErr != nil {
		return dbgen.PromoCode{}, s.getErr
	}
	if code != s.promo.Code {
		return dbgen.PromoCode{}, pgx.ErrNoRows
	}
	return s.promo, nil
}

func (s *stubQuerier) GetPromoCodeByCode(_ context.Context, code string) (dbgen.PromoCode, error) {
	return s.lookup(code)
}

func (s *stubQuerier) GetPromoCodeByCodeForUpdate(_ context.Context, code string) (dbgen.PromoCode, error) {
	return s.lookup(code)
}

func (s *stubQuerier) IncrementPromoCodeUsage(_ context.Context, _ pgtype.UUID) (int64, error) {
	s.incremented++
	return s.incrementRes, s.incrementErr
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func activePromo() dbgen.PromoCode {
	return dbgen.PromoCode{
		ID:            pgtype.UUID{Bytes: [16]byte{1}, Valid: true},
		Code:          "WINTER10",
		DiscountType:  dbgen.DiscountTypePERCENTAGE,
		DiscountValue: 10,
		IsActive:      true,
	}
}

func TestApplyConsumesUsage(t *testing.T) {
	q := &stubQuerier{promo: activePromo(), incrementRes: 1}
	svc := &Service{Q: q, Now: fixedNow}
	discount, err := svc.Apply(context.Background(), "WINTER10", 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discount.Amount != 20 {
		t.Fatalf("expected 20 discount, got %v", discount.Amount)
	}
	if q.incremented != 1 {
		t.Fatalf("expected one usage increment, got %d", q.incremented)
	}
}

func TestApplyUnknownCode(t *testing.T) {
	q := &stubQuerier{getErr: pgx.ErrNoRows}
	svc := &Service{Q: q, Now: fixedNow}
	if _, err := svc.Apply(context.Background(), "NOPE", 200); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestApplyCodeIsCaseSensitive(t *testing.T) {
	q := &stubQuerier{promo: activePromo(), incrementRes: 1}
	svc := &Service{Q: q, Now: fixedNow}
	if _, err := svc.Apply(context.Background(), "winter10", 200); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode for mismatched casing, got %v", err)
	}
	if q.incremented != 0 {
		t.Fatalf("rejected code must not consume usage, got %d increments", q.incremented)
	}
}

func TestApplyGuardedIncrementLosesRace(t *testing.T) {
	// Validation passed on this snapshot but another transaction consumed
	// the last use before our increment. Zero rows affected must surface
	// as the usage limit error so the caller rolls back.
	limit := int32(5)
	promo := activePromo()
	promo.MaxUses = pgtype.Int4{Int32: limit, Valid: true}
	promo.CurrentUses = 4
	q := &stubQuerier{promo: promo, incrementRes: 0}
	svc := &Service{Q: q, Now: fixedNow}
	if _, err := svc.Apply(context.Background(), "WINTER10", 200); !errors.Is(err, ErrUsageLimitReached) {
		t.Fatalf("expected ErrUsageLimitReached, got %v", err)
	}
}

func TestApplyExhaustedCode(t *testing.T) {
	limit := int32(5)
	promo := activePromo()
	promo.MaxUses = pgtype.Int4{Int32: limit, Valid: true}
	promo.CurrentUses = 5
	q := &stubQuerier{promo: promo}
	svc := &Service{Q: q, Now: fixedNow}
	if _, err := svc.Apply(context.Background(), "WINTER10", 200); !errors.Is(err, ErrUsageLimitReached) {
		t.Fatalf("expected ErrUsageLimitReached, got %v", err)
	}
	if q.incremented != 0 {
		t.Fatalf("exhausted code must not be incremented, got %d increments", q.incremented)
	}
}

func TestPreviewDoesNotConsumeUsage(t *testing.T) {
	q := &stubQuerier{promo: activePromo()}
	svc := &Service{Q: q, Now: fixedNow}
	discount, err := svc.Preview(context.Background(), "WINTER10", 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discount.Amount != 20 {
		t.Fatalf("expected 20 discount, got %v", discount.Amount)
	}
	if q.incremented != 0 {
		t.Fatalf("preview must not increment usage, got %d", q.incremented)
	}
}

func TestPreviewExpiredCode(t *testing.T) {
	expiry := fixedNow().Add(-time.Hour)
	promo := activePromo()
	promo.ExpiresAt = pgtype.Timestamptz{Time: expiry, Valid: true}
	q := &stubQuerier{promo: promo}
	svc := &Service{Q: q, Now: fixedNow}
	if _, err := svc.Preview(context.Background(), "WINTER10", 200); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestPreviewEmptyCode(t *testing.T) {
	svc := &Service{Q: &stubQuerier{}, Now: fixedNow}
	if _, err := svc.Preview(context.Background(), "  ", 200); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}
