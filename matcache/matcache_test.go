package matcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distfind/distmat/diskstore"
	"github.com/distfind/distmat/models"
)

func tempCache(t *testing.T) *Cache {
	store, err := diskstore.Open("")
	require.NoError(t, err)
	cache, err := New(store)
	require.NoError(t, err)
	return cache
}

func TestCache_MissThenHit(t *testing.T) {
	cache := tempCache(t)
	matrix := [][]float32{{0, 5}, {5, 0}}
	// ---------------------------
	_, ok := cache.Get(42, models.DistanceEuclidean, models.MethodNaive)
	assert.False(t, ok)
	// ---------------------------
	require.NoError(t, cache.Put(42, models.DistanceEuclidean, models.MethodNaive, matrix))
	got, ok := cache.Get(42, models.DistanceEuclidean, models.MethodNaive)
	assert.True(t, ok)
	assert.Equal(t, matrix, got)
}

func TestCache_KeysAreDisjoint(t *testing.T) {
	cache := tempCache(t)
	matrix := [][]float32{{0}}
	require.NoError(t, cache.Put(42, models.DistanceEuclidean, models.MethodNaive, matrix))
	// Same hash, different metric or method
	_, ok := cache.Get(42, models.DistanceCosine, models.MethodNaive)
	assert.False(t, ok)
	_, ok = cache.Get(42, models.DistanceEuclidean, models.MethodGram)
	assert.False(t, ok)
	// Different hash
	_, ok = cache.Get(43, models.DistanceEuclidean, models.MethodNaive)
	assert.False(t, ok)
}

func TestCache_Overwrite(t *testing.T) {
	cache := tempCache(t)
	require.NoError(t, cache.Put(1, models.DistanceEuclidean, models.MethodNaive, [][]float32{{0}}))
	updated := [][]float32{{0, 1}, {1, 0}}
	require.NoError(t, cache.Put(1, models.DistanceEuclidean, models.MethodNaive, updated))
	got, ok := cache.Get(1, models.DistanceEuclidean, models.MethodNaive)
	assert.True(t, ok)
	assert.Equal(t, updated, got)
}
