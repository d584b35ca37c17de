package tictactoe

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	maximizerField = "max"
	minimizerField = "min"
)

var ErrMalformedCacheKey = errors.New("malformed cache key")

// CacheKey identifies a searched position. Depth is deliberately absent: the first
// depth-biased score computed for a position is reused wherever it recurs.
type CacheKey struct {
	Board           entity.Board
	MaximizerToMove bool
}

// String - "XO__X___O:max".
func (that CacheKey) String() string {
	turn := minimizerField
	if that.MaximizerToMove {
		turn = maximizerField
	}

	return that.Board.String() + ":" + turn
}

func ParseCacheKey(value string) (CacheKey, error) {
	boardPart, turn, ok := strings.Cut(value, ":")
	if !ok {
		return CacheKey{}, fmt.Errorf("%w: %q", ErrMalformedCacheKey, value)
	}

	board, err := entity.ParseBoard(boardPart)
	if err != nil {
		return CacheKey{}, fmt.Errorf("%w: %w", ErrMalformedCacheKey, err)
	}

	switch turn {
	case maximizerField:
		return CacheKey{Board: board, MaximizerToMove: true}, nil
	case minimizerField:
		return CacheKey{Board: board}, nil
	default:
		return CacheKey{}, fmt.Errorf("%w: turn %q", ErrMalformedCacheKey, turn)
	}
}

// ScoreCache is an append-only memo of position scores, safe for concurrent use.
// Scores are relative to one maximizer mark, so a cache must not be shared between
// engines with different maximizers.
type ScoreCache struct {
	mu     sync.RWMutex
	scores map[CacheKey]int
}

func NewScoreCache() *ScoreCache {
	return &ScoreCache{
		scores: make(map[CacheKey]int),
	}
}

func (that *ScoreCache) Load(key CacheKey) (int, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	score, ok := that.scores[key]

	return score, ok
}

// LoadOrStore - inserts the score unless the key is already present, and returns the score that is
// now cached. A stored score never changes.
func (that *ScoreCache) LoadOrStore(key CacheKey, score int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.scores[key]; ok {
		return existing
	}

	that.scores[key] = score

	return score
}

func (that *ScoreCache) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.scores)
}

// Range - calls fn for a snapshot of all entries until fn returns false.
func (that *ScoreCache) Range(fn func(key CacheKey, score int) bool) {
	that.mu.RLock()
	snapshot := make(map[CacheKey]int, len(that.scores))
	for key, score := range that.scores {
		snapshot[key] = score
	}
	that.mu.RUnlock()

	for key, score := range snapshot {
		if !fn(key, score) {
			return
		}
	}
}
