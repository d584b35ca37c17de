package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// ScoreRepository keeps engine score caches in Redis so a restarted process, or another
// process, starts warm. One hash per maximizer mark: field is the cache key, value the score.
type ScoreRepository struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) *ScoreRepository {
	return &ScoreRepository{
		client: client,
	}
}

func scoresKey(maximizer entity.Mark) string {
	return "scores:" + maximizer.String()
}

// Load - copies stored scores into the cache. Entries already in the cache are kept.
func (that *ScoreRepository) Load(ctx context.Context, maximizer entity.Mark, cache *tictactoe.ScoreCache) (int, error) {
	fields, err := that.client.HGetAll(ctx, scoresKey(maximizer)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get scores: %w", err)
	}

	loaded := 0
	for field, value := range fields {
		key, err := tictactoe.ParseCacheKey(field)
		if err != nil {
			return loaded, fmt.Errorf("failed to parse score key: %w", err)
		}

		score, err := strconv.Atoi(value)
		if err != nil {
			return loaded, fmt.Errorf("failed to parse score for %s: %w", field, err)
		}

		cache.LoadOrStore(key, score)
		loaded++
	}

	return loaded, nil
}

// Save - writes the cache with HSETNX, so a score already stored by anyone is never replaced.
// Returns how many fields were new.
func (that *ScoreRepository) Save(ctx context.Context, maximizer entity.Mark, cache *tictactoe.ScoreCache) (int, error) {
	hashKey := scoresKey(maximizer)

	var commands []*redis.BoolCmd
	_, err := that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		cache.Range(func(key tictactoe.CacheKey, score int) bool {
			commands = append(commands, pipe.HSetNX(ctx, hashKey, key.String(), score))
			return true
		})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save scores: %w", err)
	}

	added := 0
	for _, cmd := range commands {
		if cmd.Val() {
			added++
		}
	}

	return added, nil
}

func (that *ScoreRepository) Clear(ctx context.Context, maximizer entity.Mark) error {
	if err := that.client.Del(ctx, scoresKey(maximizer)).Err(); err != nil {
		return fmt.Errorf("failed to delete scores: %w", err)
	}

	return nil
}
