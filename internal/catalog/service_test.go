package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

type stubProductQueries struct {
	listActiveCalls int
	products        []dbgen.Product
	created         *dbgen.CreateProductParams
	updated         *dbgen.UpdateProductParams
	deleted         []pgtype.UUID
}

func (s *stubProductQueries) ListActiveProducts(_ context.Context) ([]dbgen.Product, error) {
	s.listActiveCalls++
	return s.products, nil
}

func (s *stubProductQueries) ListProducts(_ context.Context) ([]dbgen.Product, error) {
	return s.products, nil
}

func (s *stubProductQueries) GetProductByID(_ context.Context, id pgtype.UUID) (dbgen.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return dbgen.Product{}, errors.New("no rows in result set")
}

func (s *stubProductQueries) CreateProduct(_ context.Context, arg dbgen.CreateProductParams) (dbgen.Product, error) {
	s.created = &arg
	return dbgen.Product{Name: arg.Name, Category: arg.Category, Price: arg.Price, DayPrices: arg.DayPrices, Active: arg.Active}, nil
}

func (s *stubProductQueries) UpdateProduct(_ context.Context, arg dbgen.UpdateProductParams) (dbgen.Product, error) {
	s.updated = &arg
	return dbgen.Product{ID: arg.ID, Name: arg.Name, Category: arg.Category, Price: arg.Price}, nil
}

func (s *stubProductQueries) DeleteProduct(_ context.Context, id pgtype.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestListActiveServedFromCacheOnSecondCall(t *testing.T) {
	queries := &stubProductQueries{products: []dbgen.Product{{Name: "Pack Sensation", Category: "ADULT", Price: 112}}}
	svc := &Service{Queries: queries, Cache: newTestCache(t)}

	first, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, 1, queries.listActiveCalls)
}

func TestCreateRejectsInvalidDayPrices(t *testing.T) {
	svc := &Service{Queries: &stubProductQueries{}, Cache: newTestCache(t)}
	_, err := svc.Create(context.Background(), ProductInput{
		Name:      "Pack",
		Category:  "ADULT",
		Price:     50,
		DayPrices: map[string]float64{"15": 40},
	})
	require.ErrorIs(t, err, ErrInvalidDayPrices)
}

func TestCreateEncodesDayPrices(t *testing.T) {
	queries := &stubProductQueries{}
	svc := &Service{Queries: queries, Cache: newTestCache(t)}
	_, err := svc.Create(context.Background(), ProductInput{
		Name:      "Pack",
		Category:  "ADULT",
		Price:     50,
		DayPrices: map[string]float64{"1": 50, "7": 280},
	})
	require.NoError(t, err)
	require.NotNil(t, queries.created)
	require.True(t, queries.created.DayPrices.Valid)
	require.Contains(t, queries.created.DayPrices.String, `"7":280`)
}

func TestCreateInvalidatesActiveCache(t *testing.T) {
	queries := &stubProductQueries{products: []dbgen.Product{{Name: "Pack"}}}
	cache := newTestCache(t)
	svc := &Service{Queries: queries, Cache: cache}

	_, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), ProductInput{Name: "New", Category: "ADULT", Price: 60})
	require.NoError(t, err)

	_, err = svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, queries.listActiveCalls)
}

func TestDefaultDayPricesCoversFullWindow(t *testing.T) {
	svc := &Service{Queries: &stubProductQueries{}, Cache: newTestCache(t)}
	table := svc.DefaultDayPrices(50)
	require.Len(t, table, 14)
	require.Equal(t, 50.0, table["1"])
	require.Equal(t, 700.0, table["14"])
}
