package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadbook/roadbook/internal/cache"
	"github.com/roadbook/roadbook/internal/journal"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewCache(client), mr
}

func sampleRoadtrip() *journal.Roadtrip {
	return &journal.Roadtrip{
		ID:     "rt-1",
		Title:  "Coastal loop",
		Author: "alice",
		Waypoints: []journal.Waypoint{
			{ID: "wp-1", Name: "Lighthouse", Position: journal.Position{Lat: 43.1, Lon: 5.9}},
		},
		LegDistances: []float64{12.5},
	}
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	rt := sampleRoadtrip()
	require.NoError(t, c.Set(ctx, rt))

	got, err := c.Get(ctx, "rt-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Coastal loop", got.Title)
	require.Len(t, got.Waypoints, 1)
	assert.Equal(t, "Lighthouse", got.Waypoints[0].Name)
	assert.Equal(t, []float64{12.5}, got.LegDistances)
}

func TestCache_Get_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got, "cache miss should return nil, nil")
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleRoadtrip()))
	require.NoError(t, c.Delete(ctx, "rt-1"))

	got, err := c.Get(ctx, "rt-1")
	require.NoError(t, err)
	assert.Nil(t, got, "entry should be gone after delete")
}

func TestCache_Delete_NonExistent(t *testing.T) {
	c, _ := newTestCache(t)
	// Deleting a key that doesn't exist should not error.
	err := c.Delete(context.Background(), "ghost")
	require.NoError(t, err)
}

func TestCache_Set_NilRoadtrip(t *testing.T) {
	c, _ := newTestCache(t)
	// Setting nil should be a no-op, not an error.
	err := c.Set(context.Background(), nil)
	require.NoError(t, err)
}

func TestCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleRoadtrip()))

	mr.FastForward(2 * time.Hour)

	got, err := c.Get(ctx, "rt-1")
	require.NoError(t, err)
	assert.Nil(t, got, "entry should be expired after TTL")
}

func TestNoop(t *testing.T) {
	var c cache.Noop
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleRoadtrip()))

	got, err := c.Get(ctx, "rt-1")
	require.NoError(t, err)
	assert.Nil(t, got, "noop cache never hits")

	require.NoError(t, c.Delete(ctx, "rt-1"))
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := cache.Connect(context.Background(), "not-a-url")
	require.Error(t, err)
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := cache.Connect(context.Background(), "redis://localhost:19999")
	require.Error(t, err)
}
