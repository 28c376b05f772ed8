package promo

import (
	"errors"
	"testing"
	"time"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

func TestComputePercentage(t *testing.T) {
	rule := Rule{DiscountType: dbgen.DiscountTypePERCENTAGE, DiscountValue: 10}
	if got := Compute(200, rule); got != 20 {
		t.Fatalf("expected 20 discount, got %v", got)
	}
}

func TestComputeFixedClampedToSubtotal(t *testing.T) {
	rule := Rule{DiscountType: dbgen.DiscountTypeFIXEDAMOUNT, DiscountValue: 50}
	if got := Compute(15, rule); got != 15 {
		t.Fatalf("expected discount clamped to 15, got %v", got)
	}
}

func TestComputeZeroSubtotal(t *testing.T) {
	rule := Rule{DiscountType: dbgen.DiscountTypePERCENTAGE, DiscountValue: 10}
	if got := Compute(0, rule); got != 0 {
		t.Fatalf("expected 0 discount, got %v", got)
	}
}

func TestValidateInactive(t *testing.T) {
	rule := Rule{IsActive: false}
	if err := rule.Validate(time.Now()); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestValidateExpired(t *testing.T) {
	expiry := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rule := Rule{IsActive: true, ExpiresAt: &expiry}
	now := expiry.Add(time.Hour)
	if err := rule.Validate(now); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestValidateUsageLimitReached(t *testing.T) {
	limit := int32(5)
	rule := Rule{IsActive: true, MaxUses: &limit, CurrentUses: 5}
	if err := rule.Validate(time.Now()); !errors.Is(err, ErrUsageLimitReached) {
		t.Fatalf("expected ErrUsageLimitReached, got %v", err)
	}
}

func TestValidateUnlimitedUses(t *testing.T) {
	rule := Rule{IsActive: true, CurrentUses: 1_000_000}
	if err := rule.Validate(time.Now()); err != nil {
		t.Fatalf("expected nil error for unlimited code, got %v", err)
	}
}

func TestValidateOrderInactiveBeforeExpired(t *testing.T) {
	expiry := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rule := Rule{IsActive: false, ExpiresAt: &expiry}
	now := expiry.Add(time.Hour)
	if err := rule.Validate(now); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode for inactive code, got %v", err)
	}
}
