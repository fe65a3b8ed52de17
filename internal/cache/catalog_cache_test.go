package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopfront/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCatalogCache(client, 5*time.Minute, zerolog.Nop()), mr
}

var sampleProducts = []model.Product{
	{ID: "b", Name: "Blender", Price: 2499, Category: "Home", CountInStock: 3},
	{ID: "a", Name: "Airpods", Price: 14999, Category: "Electronics", CountInStock: 9},
}

func TestCatalogCache_SetAndGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, sampleProducts))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleProducts, got, "cache must keep catalog order")
	assert.Equal(t, 5*time.Minute, mr.TTL("catalog:product:a"))
}

func TestCatalogCache_EvictedEntryIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, sampleProducts))

	mr.Del("catalog:product:a")

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCatalogCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, sampleProducts))

	require.NoError(t, mr.Set("catalog:product:b", "not-json"))

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCatalogCache_SetReplaces(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, sampleProducts))
	require.NoError(t, c.Set(ctx, sampleProducts[:1]))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCatalogCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, sampleProducts))

	require.NoError(t, c.Invalidate(ctx))

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}

type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func TestCachedLister(t *testing.T) {
	ctx := context.Background()

	t.Run("miss falls back and repopulates", func(t *testing.T) {
		c, _ := newTestCache(t)
		next := new(MockLister)
		next.On("ListProducts", mock.Anything).Return(sampleProducts, nil).Once()
		lister := NewCachedLister(c, next, zerolog.Nop())

		got, err := lister.ListProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleProducts, got)

		got, err = lister.ListProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleProducts, got)
		next.AssertNumberOfCalls(t, "ListProducts", 1)
	})

	t.Run("redis down still serves from database", func(t *testing.T) {
		c, mr := newTestCache(t)
		mr.Close()
		next := new(MockLister)
		next.On("ListProducts", mock.Anything).Return(sampleProducts, nil)
		lister := NewCachedLister(c, next, zerolog.Nop())

		got, err := lister.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("database error is returned", func(t *testing.T) {
		c, _ := newTestCache(t)
		next := new(MockLister)
		next.On("ListProducts", mock.Anything).Return(nil, errors.New("db down"))
		lister := NewCachedLister(c, next, zerolog.Nop())

		_, err := lister.ListProducts(ctx)
		assert.EqualError(t, err, "db down")
	})
}
