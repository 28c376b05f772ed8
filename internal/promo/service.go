package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

// Querier captures the database methods required by the promo service.
type Querier interface {
	GetPromoCodeByCode(ctx context.Context, code string) (dbgen.PromoCode, error)
	GetPromoCodeByCodeForUpdate(ctx context.Context, code string) (dbgen.PromoCode, error)
	IncrementPromoCodeUsage(ctx context.Context, id pgtype.UUID) (int64, error)
}

// Discount describes a successfully evaluated promo code.
type Discount struct {
	PromoCodeID pgtype.UUID
	Code        string
	Amount      float64
}

// Service evaluates and redeems promo codes. For Apply the Querier must be
// transaction scoped so the row lock and usage increment commit or roll back
// together with the caller's order.
type Service struct {
	Q   Querier
	Now func() time.Time
}

// Preview evaluates a code against a subtotal without consuming usage.
func (s *Service) Preview(ctx context.Context, code string, subtotal float64) (Discount, error) {
	if s == nil || s.Q == nil {
		return Discount{}, errors.New("promo service not configured")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Discount{}, ErrInvalidCode
	}
	model, err := s.Q.GetPromoCodeByCode(ctx, trimmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Discount{}, ErrInvalidCode
		}
		return Discount{}, err
	}
	rule := RuleFromModel(model)
	if err := rule.Validate(s.now()); err != nil {
		return Discount{}, err
	}
	return Discount{PromoCodeID: model.ID, Code: model.Code, Amount: Compute(subtotal, rule)}, nil
}

// Apply redeems a code: it locks the promo row, validates it, and consumes
// one use with a guarded increment. The increment refuses to go past
// max_uses, so two concurrent redemptions of the last use cannot both
// succeed even though both passed validation on their own snapshot.
func (s *Service) Apply(ctx context.Context, code string, subtotal float64) (Discount, error) {
	if s == nil || s.Q == nil {
		return Discount{}, errors.New("promo service not configured")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Discount{}, ErrInvalidCode
	}
	model, err := s.Q.GetPromoCodeByCodeForUpdate(ctx, trimmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Discount{}, ErrInvalidCode
		}
		return Discount{}, err
	}
	rule := RuleFromModel(model)
	if err := rule.Validate(s.now()); err != nil {
		return Discount{}, err
	}
	affected, err := s.Q.IncrementPromoCodeUsage(ctx, model.ID)
	if err != nil {
		return Discount{}, err
	}
	if affected == 0 {
		return Discount{}, ErrUsageLimitReached
	}
	return Discount{PromoCodeID: model.ID, Code: model.Code, Amount: Compute(subtotal, rule)}, nil
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
