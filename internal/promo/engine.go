package promo

import (
	"errors"
	"time"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

var (
	// ErrInvalidCode covers both unknown and deactivated codes so callers
	// cannot probe which codes exist.
	ErrInvalidCode = errors.New("invalid promo code")
	// ErrExpired is returned when the code's expiry instant has passed.
	ErrExpired = errors.New("promo code expired")
	// ErrUsageLimitReached indicates the code has exhausted its usage quota.
	ErrUsageLimitReached = errors.New("promo code usage limit reached")
)

// Rule captures the runtime constraints of a promo code.
type Rule struct {
	Code          string
	DiscountType  dbgen.DiscountType
	DiscountValue float64
	MaxUses       *int32
	CurrentUses   int32
	IsActive      bool
	ExpiresAt     *time.Time
}

// Validate ensures the rule can be redeemed at the provided instant.
// Checks run in a fixed order: active flag, expiry, usage quota.
func (r Rule) Validate(now time.Time) error {
	if !r.IsActive {
		return ErrInvalidCode
	}
	if r.ExpiresAt != nil && now.After(*r.ExpiresAt) {
		return ErrExpired
	}
	if r.MaxUses != nil && r.CurrentUses >= *r.MaxUses {
		return ErrUsageLimitReached
	}
	return nil
}

// Compute determines the discount amount for the given subtotal. The result
// is clamped to [0, subtotal] so the payable amount can never go negative.
func Compute(subtotal float64, r Rule) float64 {
	if subtotal <= 0 {
		return 0
	}
	var discount float64
	switch r.DiscountType {
	case dbgen.DiscountTypePERCENTAGE:
		discount = subtotal * r.DiscountValue / 100
	case dbgen.DiscountTypeFIXEDAMOUNT:
		discount = r.DiscountValue
	default:
		return 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		return 0
	}
	return discount
}

// RuleFromModel converts the generated sqlc model into a Rule used for evaluation.
func RuleFromModel(p dbgen.PromoCode) Rule {
	rule := Rule{
		Code:          p.Code,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		CurrentUses:   p.CurrentUses,
		IsActive:      p.IsActive,
	}
	if p.MaxUses.Valid {
		limit := p.MaxUses.Int32
		rule.MaxUses = &limit
	}
	if p.ExpiresAt.Valid {
		rule.ExpiresAt = &p.ExpiresAt.Time
	}
	return rule
}
