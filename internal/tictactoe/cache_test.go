package tictactoe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestScoreCache_LoadOrStore(t *testing.T) {
	t.Run("First score wins", func(t *testing.T) {
		// Given: an empty cache
		cache := NewScoreCache()
		key := CacheKey{Board: mustBoard(t, "X___O____"), MaximizerToMove: true}

		// When: two scores are stored under one key
		first := cache.LoadOrStore(key, 3)
		second := cache.LoadOrStore(key, -5)

		// Then: the first one is kept
		assert.Equal(t, 3, first)
		assert.Equal(t, 3, second)

		score, ok := cache.Load(key)
		require.True(t, ok)
		assert.Equal(t, 3, score)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("Turn is part of the key", func(t *testing.T) {
		cache := NewScoreCache()
		board := mustBoard(t, "X___O____")

		cache.LoadOrStore(CacheKey{Board: board, MaximizerToMove: true}, 1)
		cache.LoadOrStore(CacheKey{Board: board}, -1)

		assert.Equal(t, 2, cache.Len())
	})

	t.Run("Missing key", func(t *testing.T) {
		_, ok := NewScoreCache().Load(CacheKey{})

		assert.False(t, ok)
	})

	t.Run("Concurrent inserts agree on one value", func(t *testing.T) {
		// Given: many goroutines racing to insert different scores for one key
		cache := NewScoreCache()
		key := CacheKey{Board: entity.Board{}, MaximizerToMove: false}

		var wg sync.WaitGroup
		results := make([]int, 16)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = cache.LoadOrStore(key, i)
			}(i)
		}
		wg.Wait()

		// Then: every goroutine saw the same stored score
		for _, result := range results {
			assert.Equal(t, results[0], result)
		}
	})
}

func TestScoreCache_Range(t *testing.T) {
	// Given: a cache with three entries
	cache := NewScoreCache()
	cache.LoadOrStore(CacheKey{Board: mustBoard(t, "X________")}, 1)
	cache.LoadOrStore(CacheKey{Board: mustBoard(t, "_X_______")}, 2)
	cache.LoadOrStore(CacheKey{Board: mustBoard(t, "__X______")}, 3)

	t.Run("Visits every entry", func(t *testing.T) {
		sum := 0
		cache.Range(func(_ CacheKey, score int) bool {
			sum += score
			return true
		})

		assert.Equal(t, 6, sum)
	})

	t.Run("Stops when asked", func(t *testing.T) {
		visited := 0
		cache.Range(func(CacheKey, int) bool {
			visited++
			return false
		})

		assert.Equal(t, 1, visited)
	})
}

func TestCacheKey_String(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		for _, key := range []CacheKey{
			{Board: mustBoard(t, "XO__X___O"), MaximizerToMove: true},
			{Board: mustBoard(t, "_________")},
		} {
			parsed, err := ParseCacheKey(key.String())

			require.NoError(t, err)
			assert.Equal(t, key, parsed)
		}
	})

	t.Run("Readable form", func(t *testing.T) {
		key := CacheKey{Board: mustBoard(t, "XO__X___O"), MaximizerToMove: true}

		assert.Equal(t, "XO__X___O:max", key.String())
	})

	t.Run("Malformed keys", func(t *testing.T) {
		for _, value := range []string{"XO__X___O", "XO__X___O:mid", "XO:max"} {
			_, err := ParseCacheKey(value)

			assert.ErrorIs(t, err, ErrMalformedCacheKey, value)
		}
	})
}
