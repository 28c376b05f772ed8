package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
	"github.com/Vexflip/skiset-reservation/internal/events"
	"github.com/Vexflip/skiset-reservation/internal/obs"
	"github.com/Vexflip/skiset-reservation/internal/pricing"
	"github.com/Vexflip/skiset-reservation/internal/promo"
)

var (
	// ErrNoItems is returned when a reservation request carries no equipment lines.
	ErrNoItems = errors.New("reservation requires at least one item")
	// ErrInvalidDates is returned when the rental window cannot be parsed.
	ErrInvalidDates = errors.New("invalid rental dates")
	// ErrProductNotFound is returned when an item references an unknown product.
	ErrProductNotFound = errors.New("product not found")
)

// ItemInput describes one equipment line of a reservation request.
type ItemInput struct {
	ProductID   *string `json:"productId"`
	Category    string  `json:"category" validate:"required"`
	ProductName *string `json:"productName"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int32   `json:"quantity" validate:"gt=0"`
	Image       *string `json:"image"`
	BootsImage  *string `json:"bootsImage"`
	HelmetImage *string `json:"helmetImage"`
	Options     *string `json:"options"`
	Size        *string `json:"size"`
	Level       *string `json:"level"`
	Surname     *string `json:"surname"`
	Sex         *string `json:"sex"`
	Age         *int32  `json:"age"`
	Height      *string `json:"height"`
	Weight      *string `json:"weight"`
	ShoeSize    *string `json:"shoeSize"`
}

// Input is a reservation creation request.
type Input struct {
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Email     string      `json:"email" validate:"required,email"`
	Phone     string      `json:"phone" validate:"required"`
	StartDate string      `json:"startDate" validate:"required"`
	EndDate   string      `json:"endDate" validate:"required"`
	Notes     *string     `json:"notes"`
	PromoCode *string     `json:"promoCode"`
	Items     []ItemInput `json:"items" validate:"required,dive"`
}

// Output summarizes a created reservation.
type Output struct {
	ReservationID string  `json:"reservationId"`
	Status        string  `json:"status"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Days          int     `json:"days"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	FinalPrice    float64 `json:"finalPrice"`
	PromoCode     string  `json:"promoCode,omitempty"`
}

// Service creates reservations. Pricing resolution, promo redemption and
// persistence of the order plus its items run in a single transaction so a
// failed promo increment rolls back the whole reservation.
type Service struct {
	Q      *dbgen.Queries
	Pool   *pgxpool.Pool
	Events *events.Bus
	Now    func() time.Time
}

// Create prices and persists a reservation.
func (s *Service) Create(ctx context.Context, in Input) (Output, error) {
	if s == nil || s.Q == nil || s.Pool == nil {
		return Output{}, errors.New("reservation service not configured")
	}
	if len(in.Items) == 0 {
		return Output{}, ErrNoItems
	}
	start, err := parseDate(in.StartDate)
	if err != nil {
		return Output{}, ErrInvalidDates
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return Output{}, ErrInvalidDates
	}
	start, end = pricing.ClampWindow(start, end)
	days := pricing.Days(start, end)

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Output{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.Q.WithTx(tx)

	type pricedItem struct {
		input     ItemInput
		productID pgtype.UUID
		unitPrice float64
	}
	priced := make([]pricedItem, 0, len(in.Items))
	var subtotal float64
	for _, it := range in.Items {
		line := pricedItem{input: it, unitPrice: it.Price}
		if it.ProductID != nil && strings.TrimSpace(*it.ProductID) != "" {
			id, err := toUUID(*it.ProductID)
			if err != nil {
				return Output{}, fmt.Errorf("invalid product id: %w", err)
			}
			product, err := qtx.GetProductByID(ctx, id)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return Output{}, ErrProductNotFound
				}
				return Output{}, err
			}
			price, fellBack := pricing.Resolve(product.Price, days, textValue(product.DayPrices))
			if fellBack {
				zerolog.Ctx(ctx).Warn().
					Str("product_id", uuidString(product.ID)).
					Msg("day price overrides unparsable, using linear pricing")
				if obs.PricingFallbackTotal != nil {
					obs.PricingFallbackTotal.Inc()
				}
			}
			line.productID = id
			line.unitPrice = price
			if it.ProductName == nil {
				name := product.Name
				line.input.ProductName = &name
			}
		}
		subtotal += line.unitPrice * float64(line.input.Quantity)
		priced = append(priced, line)
	}

	var discount promo.Discount
	if in.PromoCode != nil && strings.TrimSpace(*in.PromoCode) != "" {
		promoSvc := &promo.Service{Q: qtx, Now: s.Now}
		discount, err = promoSvc.Apply(ctx, *in.PromoCode, subtotal)
		if err != nil {
			if obs.PromoRedemptionsTotal != nil {
				obs.PromoRedemptionsTotal.WithLabelValues("rejected").Inc()
			}
			return Output{}, err
		}
		if obs.PromoRedemptionsTotal != nil {
			obs.PromoRedemptionsTotal.WithLabelValues("applied").Inc()
		}
	}
	final := subtotal - discount.Amount

	created, err := qtx.CreateReservation(ctx, dbgen.CreateReservationParams{
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		StartDate:      pgtype.Date{Time: start, Valid: true},
		EndDate:        pgtype.Date{Time: end, Valid: true},
		Notes:          toNullableText(in.Notes),
		Status:         dbgen.ReservationStatusPENDING,
		TotalPrice:     subtotal,
		DiscountAmount: discount.Amount,
		FinalPrice:     final,
		PromoCodeID:    discount.PromoCodeID,
	})
	if err != nil {
		return Output{}, err
	}
	for _, line := range priced {
		if _, err := qtx.CreateReservationItem(ctx, dbgen.CreateReservationItemParams{
			ReservationID: created.ID,
			ProductID:     line.productID,
			Category:      line.input.Category,
			ProductName:   toNullableText(line.input.ProductName),
			Price:         line.unitPrice,
			Quantity:      line.input.Quantity,
			Image:         toNullableText(line.input.Image),
			BootsImage:    toNullableText(line.input.BootsImage),
			HelmetImage:   toNullableText(line.input.HelmetImage),
			Options:       toNullableText(line.input.Options),
			Size:          toNullableText(line.input.Size),
			Level:         toNullableText(line.input.Level),
			Surname:       toNullableText(line.input.Surname),
			Sex:           toNullableText(line.input.Sex),
			Age:           toNullableInt4(line.input.Age),
			Height:        toNullableText(line.input.Height),
			Weight:        toNullableText(line.input.Weight),
			ShoeSize:      toNullableText(line.input.ShoeSize),
		}); err != nil {
			return Output{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Output{}, err
	}
	if obs.ReservationsCreatedTotal != nil {
		obs.ReservationsCreatedTotal.WithLabelValues("ok").Inc()
	}
	if s.Events != nil {
		payload := map[string]any{
			"reservationId": uuidString(created.ID),
			"email":         created.Email,
			"firstName":     created.FirstName,
			"finalPrice":    created.FinalPrice,
		}
		_, _ = s.Events.Emit(ctx, events.TopicReservationCreated, created.ID, payload)
	}
	return Output{
		ReservationID: uuidString(created.ID),
		Status:        string(created.Status),
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		Days:          days,
		Subtotal:      subtotal,
		Discount:      discount.Amount,
		FinalPrice:    final,
		PromoCode:     discount.Code,
	}, nil
}

// parseDate accepts a calendar date with or without a time component.
func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func toUUID(value string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

func textValue(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func toNullableText(v *string) pgtype.Text {
	if v == nil || strings.TrimSpace(*v) == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}

func toNullableInt4(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}
