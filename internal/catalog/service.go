package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
	"github.com/Vexflip/skiset-reservation/internal/pricing"
)

const activeProductsCacheKey = "catalog:products:active"

// ErrInvalidDayPrices rejects malformed override tables on the admin write
// path. Read-side pricing stays lenient; writes do not.
var ErrInvalidDayPrices = errors.New("invalid day prices")

// ErrProductNotFound is returned when a product lookup misses.
var ErrProductNotFound = errors.New("product not found")

type queryProvider interface {
	ListActiveProducts(ctx context.Context) ([]dbgen.Product, error)
	ListProducts(ctx context.Context) ([]dbgen.Product, error)
	GetProductByID(ctx context.Context, id pgtype.UUID) (dbgen.Product, error)
	CreateProduct(ctx context.Context, arg dbgen.CreateProductParams) (dbgen.Product, error)
	UpdateProduct(ctx context.Context, arg dbgen.UpdateProductParams) (dbgen.Product, error)
	DeleteProduct(ctx context.Context, id pgtype.UUID) error
}

// Service orchestrates catalog queries, DTO assembly, and caching.
type Service struct {
	Queries queryProvider
	Cache   *Cache
}

// Product is the public catalog payload.
type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	OriginalPrice *float64          `json:"originalPrice,omitempty"`
	Level         *string           `json:"level,omitempty"`
	Image         *string           `json:"image,omitempty"`
	BootsImage    *string           `json:"bootsImage,omitempty"`
	HelmetImage   *string           `json:"helmetImage,omitempty"`
	TitleColor    *string           `json:"titleColor,omitempty"`
	EquipmentType *string           `json:"equipmentType,omitempty"`
	TargetGroup   *string           `json:"targetGroup,omitempty"`
	Features      *string           `json:"features,omitempty"`
	Active        bool              `json:"active"`
	DayPrices     pricing.Overrides `json:"dayPrices,omitempty"`
	CreatedAt     *time.Time        `json:"createdAt,omitempty"`
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name          string            `json:"name" validate:"required"`
	Description   string            `json:"description"`
	Category      string            `json:"category" validate:"required"`
	Price         float64           `json:"price" validate:"gte=0"`
	OriginalPrice *float64          `json:"originalPrice" validate:"omitempty,gte=0"`
	Level         *string           `json:"level"`
	Image         *string           `json:"image"`
	BootsImage    *string           `json:"bootsImage"`
	HelmetImage   *string           `json:"helmetImage"`
	TitleColor    *string           `json:"titleColor"`
	EquipmentType *string           `json:"equipmentType"`
	TargetGroup   *string           `json:"targetGroup"`
	Features      *string           `json:"features"`
	Active        *bool             `json:"active"`
	DayPrices     pricing.Overrides `json:"dayPrices"`
}

// ListActive returns the customer-facing catalog, served from cache when warm.
func (s *Service) ListActive(ctx context.Context) ([]Product, error) {
	var cached []Product
	if hit, err := s.Cache.GetJSON(ctx, activeProductsCacheKey, &cached); err == nil && hit {
		return cached, nil
	}
	rows, err := s.Queries.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, toProduct(row))
	}
	_ = s.Cache.SetJSON(ctx, activeProductsCacheKey, products)
	return products, nil
}

// ListAll returns every product including inactive ones, uncached.
func (s *Service) ListAll(ctx context.Context) ([]Product, error) {
	rows, err := s.Queries.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, toProduct(row))
	}
	return products, nil
}

// Get loads a single product by id.
func (s *Service) Get(ctx context.Context, id pgtype.UUID) (Product, error) {
	row, err := s.Queries.GetProductByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	return toProduct(row), nil
}

// Create inserts a product after strictly validating its override table.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	dayPrices, err := encodeDayPrices(in.DayPrices)
	if err != nil {
		return Product{}, err
	}
	row, err := s.Queries.CreateProduct(ctx, dbgen.CreateProductParams{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      strings.TrimSpace(in.Category),
		Price:         in.Price,
		OriginalPrice: toFloat8(in.OriginalPrice),
		Level:         toText(in.Level),
		Image:         toText(in.Image),
		BootsImage:    toText(in.BootsImage),
		HelmetImage:   toText(in.HelmetImage),
		TitleColor:    toText(in.TitleColor),
		EquipmentType: toText(in.EquipmentType),
		TargetGroup:   toText(in.TargetGroup),
		Features:      toText(in.Features),
		Active:        in.Active == nil || *in.Active,
		DayPrices:     dayPrices,
	})
	if err != nil {
		return Product{}, err
	}
	s.Cache.Invalidate(ctx, activeProductsCacheKey)
	return toProduct(row), nil
}

// Update replaces a product's fields.
func (s *Service) Update(ctx context.Context, id pgtype.UUID, in ProductInput) (Product, error) {
	dayPrices, err := encodeDayPrices(in.DayPrices)
	if err != nil {
		return Product{}, err
	}
	row, err := s.Queries.UpdateProduct(ctx, dbgen.UpdateProductParams{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      strings.TrimSpace(in.Category),
		Price:         in.Price,
		OriginalPrice: toFloat8(in.OriginalPrice),
		Level:         toText(in.Level),
		Image:         toText(in.Image),
		BootsImage:    toText(in.BootsImage),
		HelmetImage:   toText(in.HelmetImage),
		TitleColor:    toText(in.TitleColor),
		EquipmentType: toText(in.EquipmentType),
		TargetGroup:   toText(in.TargetGroup),
		Features:      toText(in.Features),
		Active:        in.Active == nil || *in.Active,
		DayPrices:     dayPrices,
	})
	if err != nil {
		return Product{}, err
	}
	s.Cache.Invalidate(ctx, activeProductsCacheKey)
	return toProduct(row), nil
}

// Delete removes a product and flushes the catalog cache.
func (s *Service) Delete(ctx context.Context, id pgtype.UUID) error {
	if err := s.Queries.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, activeProductsCacheKey)
	return nil
}

// DefaultDayPrices pre-seeds a linear override table for the admin UI.
func (s *Service) DefaultDayPrices(base float64) pricing.Overrides {
	return pricing.GenerateDefaultOverrides(base, pricing.MaxRentalDays)
}

func encodeDayPrices(overrides pricing.Overrides) (pgtype.Text, error) {
	if len(overrides) == 0 {
		return pgtype.Text{}, nil
	}
	data, err := json.Marshal(overrides)
	if err != nil {
		return pgtype.Text{}, ErrInvalidDayPrices
	}
	if !pricing.IsValidOverrides(string(data)) {
		return pgtype.Text{}, ErrInvalidDayPrices
	}
	return pgtype.Text{String: string(data), Valid: true}, nil
}

func toProduct(row dbgen.Product) Product {
	p := Product{
		ID:            uuid.UUID(row.ID.Bytes).String(),
		Name:          row.Name,
		Description:   row.Description,
		Category:      row.Category,
		Price:         row.Price,
		OriginalPrice: fromFloat8(row.OriginalPrice),
		Level:         fromText(row.Level),
		Image:         fromText(row.Image),
		BootsImage:    fromText(row.BootsImage),
		HelmetImage:   fromText(row.HelmetImage),
		TitleColor:    fromText(row.TitleColor),
		EquipmentType: fromText(row.EquipmentType),
		TargetGroup:   fromText(row.TargetGroup),
		Features:      fromText(row.Features),
		Active:        row.Active,
	}
	if row.DayPrices.Valid {
		// Lenient here like the pricing path: a broken table renders as absent.
		if overrides, err := pricing.ParseOverrides(row.DayPrices.String); err == nil {
			p.DayPrices = overrides
		}
	}
	if row.CreatedAt.Valid {
		created := row.CreatedAt.Time
		p.CreatedAt = &created
	}
	return p
}

func toText(v *string) pgtype.Text {
	if v == nil || strings.TrimSpace(*v) == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}

func fromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	v := t.String
	return &v
}

func toFloat8(v *float64) pgtype.Float8 {
	if v == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *v, Valid: true}
}

func fromFloat8(f pgtype.Float8) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
