package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySeedingCache_RoundTrip(t *testing.T) {
	c := NewMemorySeedingCache()
	ctx := context.Background()

	require.NoError(t, c.SaveOrder(ctx, 1, []int{3, 1, 2}))

	ids, err := c.GetOrder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestMemorySeedingCache_MissReturnsErrNoOrder(t *testing.T) {
	c := NewMemorySeedingCache()

	_, err := c.GetOrder(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoOrder)
}

func TestMemorySeedingCache_ClearOrder(t *testing.T) {
	c := NewMemorySeedingCache()
	ctx := context.Background()

	require.NoError(t, c.SaveOrder(ctx, 1, []int{1, 2}))
	require.NoError(t, c.ClearOrder(ctx, 1))

	_, err := c.GetOrder(ctx, 1)
	assert.ErrorIs(t, err, ErrNoOrder)
}

func TestMemorySeedingCache_ExpiredEntryEvicted(t *testing.T) {
	c := &memorySeedingCache{entries: map[int]memoryEntry{
		1: {ids: []int{1, 2}, expires: time.Now().Add(-time.Minute)},
	}}

	_, err := c.GetOrder(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoOrder)
	assert.Empty(t, c.entries)
}

func TestMemorySeedingCache_ReturnsCopy(t *testing.T) {
	c := NewMemorySeedingCache()
	ctx := context.Background()

	input := []int{1, 2, 3}
	require.NoError(t, c.SaveOrder(ctx, 1, input))
	input[0] = 99

	ids, err := c.GetOrder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)

	ids[1] = 99
	again, err := c.GetOrder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, again)
}

func TestSeedingKeyFormat(t *testing.T) {
	assert.Equal(t, "seeding_order_17", seedingKey(17))
}
