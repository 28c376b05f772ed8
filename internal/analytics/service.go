package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

// Querier defines the database access required for analytics operations.
type Querier interface {
	ListAnalyticsReservations(ctx context.Context, since pgtype.Timestamptz) ([]dbgen.ListAnalyticsReservationsRow, error)
	ListAnalyticsItems(ctx context.Context, since pgtype.Timestamptz) ([]dbgen.ListAnalyticsItemsRow, error)
	ListProductTypeHints(ctx context.Context) ([]dbgen.ListProductTypeHintsRow, error)
}

// Overview aggregates booking activity for the admin dashboard.
type Overview struct {
	RangeDays         int            `json:"rangeDays"`
	TotalReservations int            `json:"totalReservations"`
	StatusCounts      map[string]int `json:"statusCounts"`
	Revenue           float64        `json:"revenue"`
	DiscountTotal     float64        `json:"discountTotal"`
	AverageOrderValue float64        `json:"averageOrderValue"`
	EquipmentCounts   map[string]int `json:"equipmentCounts"`
	RevenueOverTime   []RevenuePoint `json:"revenueOverTime"`
}

// RevenuePoint is one day of the revenue series.
type RevenuePoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Service provides cached access to reservation analytics.
type Service struct {
	Q            Querier
	R            *redis.Client
	TTL          time.Duration
	DefaultRange int
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// OverviewRange computes the dashboard summary for the trailing number of days.
func (s *Service) OverviewRange(ctx context.Context, rangeDays int) (Overview, error) {
	if s == nil || s.Q == nil {
		return Overview{}, fmt.Errorf("analytics service not configured")
	}
	if rangeDays <= 0 {
		rangeDays = s.DefaultRange
	}
	if rangeDays <= 0 {
		rangeDays = 30
	}
	key := fmt.Sprintf("an:overview:%d", rangeDays)
	if cached, ok := s.getFromCache(ctx, key); ok {
		return cached, nil
	}
	since := pgtype.Timestamptz{Time: s.now().AddDate(0, 0, -rangeDays), Valid: true}
	reservations, err := s.Q.ListAnalyticsReservations(ctx, since)
	if err != nil {
		return Overview{}, err
	}
	items, err := s.Q.ListAnalyticsItems(ctx, since)
	if err != nil {
		return Overview{}, err
	}
	hints, err := s.Q.ListProductTypeHints(ctx)
	if err != nil {
		return Overview{}, err
	}

	out := Overview{
		RangeDays:       rangeDays,
		StatusCounts:    map[string]int{},
		EquipmentCounts: map[string]int{},
	}
	// Zero-filled daily series ending today, oldest first.
	out.RevenueOverTime = make([]RevenuePoint, rangeDays)
	seriesIndex := make(map[string]int, rangeDays)
	for i := 0; i < rangeDays; i++ {
		day := s.now().AddDate(0, 0, i-rangeDays+1).Format("2006-01-02")
		out.RevenueOverTime[i] = RevenuePoint{Date: day}
		seriesIndex[day] = i
	}

	out.TotalReservations = len(reservations)
	for _, r := range reservations {
		out.StatusCounts[string(r.Status)]++
		if r.Status == dbgen.ReservationStatusCANCELLED {
			continue
		}
		out.Revenue += r.FinalPrice
		out.DiscountTotal += r.DiscountAmount
		if r.CreatedAt.Valid {
			if i, ok := seriesIndex[r.CreatedAt.Time.Format("2006-01-02")]; ok {
				out.RevenueOverTime[i].Amount += r.FinalPrice
			}
		}
	}
	if out.TotalReservations > 0 {
		out.AverageOrderValue = out.Revenue / float64(out.TotalReservations)
	}

	typeByName := make(map[string]string, len(hints))
	for _, h := range hints {
		if h.EquipmentType.Valid {
			typeByName[strings.ToLower(h.Name)] = h.EquipmentType.String
		}
	}
	for _, it := range items {
		if it.Status == dbgen.ReservationStatusCANCELLED {
			continue
		}
		out.EquipmentCounts[inferEquipment(it, typeByName)] += int(it.Quantity)
	}
	s.store(ctx, key, out)
	return out, nil
}

// inferEquipment resolves an item to an equipment family. The product's own
// equipment type wins when the item still references a known product name;
// otherwise the category is the only signal left on the denormalized line.
func inferEquipment(it dbgen.ListAnalyticsItemsRow, typeByName map[string]string) string {
	if it.ProductName.Valid {
		if raw, ok := typeByName[strings.ToLower(it.ProductName.String)]; ok {
			return normalizeEquipment(raw)
		}
	}
	return normalizeEquipment(it.Category)
}

func normalizeEquipment(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SNOWBOARD":
		return "SNOWBOARD"
	case "MINISKI":
		return "MINISKI"
	case "TOURING":
		return "TOURING"
	case "ADULT_SKI", "KIDS_SKI", "SKI":
		return "SKI"
	default:
		return "OTHER"
	}
}

func (s *Service) getFromCache(ctx context.Context, key string) (Overview, bool) {
	if s.R == nil || s.TTL <= 0 {
		return Overview{}, false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return Overview{}, false
	}
	var out Overview
	if err := json.Unmarshal(data, &out); err != nil {
		return Overview{}, false
	}
	return out, true
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
