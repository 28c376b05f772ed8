package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

type stubQueries struct {
	reservations []dbgen.ListAnalyticsReservationsRow
	items        []dbgen.ListAnalyticsItemsRow
	hints        []dbgen.ListProductTypeHintsRow
	calls        int
}

func (s *stubQueries) ListAnalyticsReservations(_ context.Context, _ pgtype.Timestamptz) ([]dbgen.ListAnalyticsReservationsRow, error) {
	s.calls++
	return s.reservations, nil
}

func (s *stubQueries) ListAnalyticsItems(_ context.Context, _ pgtype.Timestamptz) ([]dbgen.ListAnalyticsItemsRow, error) {
	return s.items, nil
}

func (s *stubQueries) ListProductTypeHints(_ context.Context) ([]dbgen.ListProductTypeHintsRow, error) {
	return s.hints, nil
}

func text(v string) pgtype.Text {
	return pgtype.Text{String: v, Valid: true}
}

func at(day time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: day, Valid: true}
}

func TestOverviewAggregates(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	q := &stubQueries{
		reservations: []dbgen.ListAnalyticsReservationsRow{
			{Status: dbgen.ReservationStatusCONFIRMED, FinalPrice: 180, DiscountAmount: 20, CreatedAt: at(today)},
			{Status: dbgen.ReservationStatusPENDING, FinalPrice: 100, CreatedAt: at(today.AddDate(0, 0, -1))},
			{Status: dbgen.ReservationStatusCANCELLED, FinalPrice: 50, CreatedAt: at(today)},
		},
		items: []dbgen.ListAnalyticsItemsRow{
			{Category: "ADULT_SKI", ProductName: text("Pack Sensation"), Quantity: 2, Status: dbgen.ReservationStatusCONFIRMED},
			{Category: "SNOWBOARD", Quantity: 1, Status: dbgen.ReservationStatusPENDING},
			{Category: "ADULT_SKI", Quantity: 1, Status: dbgen.ReservationStatusCANCELLED},
		},
		hints: []dbgen.ListProductTypeHintsRow{
			{Name: "Pack Sensation", EquipmentType: text("SKI"), Category: "ADULT_SKI"},
		},
	}
	svc := &Service{Q: q, Now: func() time.Time { return today }}

	out, err := svc.OverviewRange(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TotalReservations != 3 {
		t.Fatalf("expected 3 reservations, got %d", out.TotalReservations)
	}
	if out.Revenue != 280 {
		t.Fatalf("cancelled revenue must be excluded, got %v", out.Revenue)
	}
	if out.DiscountTotal != 20 {
		t.Fatalf("expected 20 discount total, got %v", out.DiscountTotal)
	}
	if want := 280.0 / 3; out.AverageOrderValue != want {
		t.Fatalf("expected AOV %v over all reservations, got %v", want, out.AverageOrderValue)
	}
	if out.StatusCounts["CANCELLED"] != 1 {
		t.Fatalf("expected one cancelled reservation, got %d", out.StatusCounts["CANCELLED"])
	}
	if out.EquipmentCounts["SKI"] != 2 {
		t.Fatalf("expected 2 ski units, got %d", out.EquipmentCounts["SKI"])
	}
	if out.EquipmentCounts["SNOWBOARD"] != 1 {
		t.Fatalf("expected 1 snowboard unit, got %d", out.EquipmentCounts["SNOWBOARD"])
	}
}

func TestOverviewRevenueSeries(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	q := &stubQueries{
		reservations: []dbgen.ListAnalyticsReservationsRow{
			{Status: dbgen.ReservationStatusCONFIRMED, FinalPrice: 180, CreatedAt: at(today)},
			{Status: dbgen.ReservationStatusCANCELLED, FinalPrice: 50, CreatedAt: at(today)},
			{Status: dbgen.ReservationStatusPENDING, FinalPrice: 100, CreatedAt: at(today.AddDate(0, 0, -1))},
		},
	}
	svc := &Service{Q: q, Now: func() time.Time { return today }}

	out, err := svc.OverviewRange(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.RevenueOverTime) != 7 {
		t.Fatalf("expected a zero-filled point per day, got %d", len(out.RevenueOverTime))
	}
	first := out.RevenueOverTime[0]
	if first.Date != "2024-05-26" || first.Amount != 0 {
		t.Fatalf("expected empty oldest day 2024-05-26, got %+v", first)
	}
	yesterday := out.RevenueOverTime[5]
	if yesterday.Date != "2024-05-31" || yesterday.Amount != 100 {
		t.Fatalf("expected 100 on 2024-05-31, got %+v", yesterday)
	}
	last := out.RevenueOverTime[6]
	if last.Date != "2024-06-01" || last.Amount != 180 {
		t.Fatalf("cancelled revenue must stay out of the series, got %+v", last)
	}
}

func TestOverviewServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	q := &stubQueries{}
	svc := &Service{Q: q, R: client, TTL: time.Minute}

	if _, err := svc.OverviewRange(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.OverviewRange(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.calls != 1 {
		t.Fatalf("expected single database pass, got %d", q.calls)
	}
}

func TestNormalizeEquipment(t *testing.T) {
	if got := normalizeEquipment("KIDS_SKI"); got != "SKI" {
		t.Fatalf("expected SKI, got %s", got)
	}
	if got := normalizeEquipment("miniski"); got != "MINISKI" {
		t.Fatalf("expected MINISKI, got %s", got)
	}
	if got := normalizeEquipment("HELMET"); got != "OTHER" {
		t.Fatalf("expected OTHER for unmapped category, got %s", got)
	}
	if got := normalizeEquipment("unknown thing"); got != "OTHER" {
		t.Fatalf("expected OTHER fallback, got %s", got)
	}
}
