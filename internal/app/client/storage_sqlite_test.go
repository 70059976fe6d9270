package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagsync/internal/domain/inventory"
)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCacheBagsRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	bags := []inventory.Bag{
		{ID: "b1", Name: "Alpha", OwnerUserID: 7},
		{ID: "b2", Name: "Bravo", OwnerUserID: 7, AssignmentDate: "2024-03-01 09:00:00"},
	}
	require.NoError(t, cache.PutBags(7, bags))

	got, err := cache.CachedBags(7)
	require.NoError(t, err)
	assert.Equal(t, bags, got)

	other, err := cache.CachedBags(8)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCachePutBagsReplaces(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.PutBags(7, []inventory.Bag{{ID: "b1", Name: "Alpha", OwnerUserID: 7}}))
	require.NoError(t, cache.PutBags(7, []inventory.Bag{{ID: "b2", Name: "Bravo", OwnerUserID: 7}}))

	got, err := cache.CachedBags(7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].ID)
}

func TestCacheItemsRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	items := []inventory.Item{
		{
			ID:               1,
			BagID:            "b1",
			Description:      "Rope",
			InspectionStatus: inventory.StatusPassed,
			InspectionDate:   "2024-03-01 00:00:00",
		},
		{ID: 2, BagID: "b1", Description: "Harness", InspectionStatus: inventory.StatusFailed},
	}
	require.NoError(t, cache.PutItems("b1", items))

	got, err := cache.CachedItems("b1")
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestCacheInvalidateBagDropsItems(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.PutBags(7, []inventory.Bag{{ID: "b1", Name: "Alpha", OwnerUserID: 7}}))
	require.NoError(t, cache.PutItems("b1", []inventory.Item{{ID: 1, BagID: "b1", Description: "Rope"}}))

	require.NoError(t, cache.InvalidateBag("b1"))

	bags, err := cache.CachedBags(7)
	require.NoError(t, err)
	assert.Empty(t, bags)

	items, err := cache.CachedItems("b1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCacheInvalidateItem(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.PutItems("b1", []inventory.Item{
		{ID: 1, BagID: "b1", Description: "Rope"},
		{ID: 2, BagID: "b1", Description: "Harness"},
	}))

	require.NoError(t, cache.InvalidateItem(1))

	items, err := cache.CachedItems("b1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)
}
