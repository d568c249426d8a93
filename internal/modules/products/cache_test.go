package products_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/modules/products"
)

type countingCatalog struct {
	listCalls int
	getCalls  int
	items     []products.Product
}

func (c *countingCatalog) ListActive(_ context.Context, _, _ int) ([]products.Product, error) {
	c.listCalls++
	return c.items, nil
}

func (c *countingCatalog) GetBySlug(_ context.Context, slug string) (products.Product, error) {
	c.getCalls++
	for _, p := range c.items {
		if p.Slug == slug {
			return p, nil
		}
	}
	return products.Product{}, nil
}

func newTestCache(t *testing.T, next products.Catalog) (*products.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return products.NewCache(next, rdb, time.Minute, log), mr
}

func TestCache_ListActive_ReadThrough(t *testing.T) {
	t.Parallel()

	src := &countingCatalog{items: []products.Product{
		{ID: "p1", Slug: "doska-volna", Name: "Доска Волна", Status: products.StatusActive},
	}}
	cache, _ := newTestCache(t, src)
	ctx := context.Background()

	first, err := cache.ListActive(ctx, 24, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := cache.ListActive(ctx, 24, 0)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, src.listCalls, "second read served from cache")
}

func TestCache_ListActive_SkipsPagedRequests(t *testing.T) {
	t.Parallel()

	src := &countingCatalog{}
	cache, _ := newTestCache(t, src)
	ctx := context.Background()

	_, err := cache.ListActive(ctx, 24, 24)
	require.NoError(t, err)
	_, err = cache.ListActive(ctx, 24, 24)
	require.NoError(t, err)
	require.Equal(t, 2, src.listCalls)
}

func TestCache_GetBySlug_ExpiresWithTTL(t *testing.T) {
	t.Parallel()

	src := &countingCatalog{items: []products.Product{
		{ID: "p1", Slug: "veslo-karbon", Name: "Весло карбон", Status: products.StatusActive},
	}}
	cache, mr := newTestCache(t, src)
	ctx := context.Background()

	_, err := cache.GetBySlug(ctx, "veslo-karbon")
	require.NoError(t, err)
	_, err = cache.GetBySlug(ctx, "veslo-karbon")
	require.NoError(t, err)
	require.Equal(t, 1, src.getCalls)

	mr.FastForward(2 * time.Minute)

	_, err = cache.GetBySlug(ctx, "veslo-karbon")
	require.NoError(t, err)
	require.Equal(t, 2, src.getCalls, "expired entry refetched")
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	src := &countingCatalog{items: []products.Product{
		{ID: "p1", Slug: "doska-volna", Status: products.StatusActive},
	}}
	cache, _ := newTestCache(t, src)
	ctx := context.Background()

	_, err := cache.ListActive(ctx, 24, 0)
	require.NoError(t, err)
	_, err = cache.GetBySlug(ctx, "doska-volna")
	require.NoError(t, err)

	cache.Invalidate(ctx)

	_, err = cache.ListActive(ctx, 24, 0)
	require.NoError(t, err)
	require.Equal(t, 2, src.listCalls, "invalidation forces a reload")
}
