package tictactoe

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// winScore is the magnitude of a win found right at the root's child.
const winScore = 10

var (
	ErrInvalidMark   = errors.New("mark to move must be X or O")
	ErrInvalidBoard  = errors.New("board holds an unknown mark")
	ErrBoardTerminal = errors.New("board is already terminal")
)

// Engine picks optimal moves by exhaustive minimax. Scores are seen from the maximizer:
// its wins are positive, the minimizer's wins negative, draws zero.
type Engine struct {
	maximizer entity.Mark
	minimizer entity.Mark
	cache     *ScoreCache
}

// NewEngine - builds an engine for a fixed maximizer. A nil cache gets a fresh one.
func NewEngine(maximizer entity.Mark, cache *ScoreCache) (*Engine, error) {
	if !maximizer.IsPlayer() {
		return nil, fmt.Errorf("%w: maximizer %d", ErrInvalidMark, maximizer)
	}

	if cache == nil {
		cache = NewScoreCache()
	}

	return &Engine{
		maximizer: maximizer,
		minimizer: maximizer.Opponent(),
		cache:     cache,
	}, nil
}

func (that *Engine) Maximizer() entity.Mark {
	return that.maximizer
}

func (that *Engine) Cache() *ScoreCache {
	return that.cache
}

// BestMove - returns the optimal cell for mark on a non-terminal board. Equal scores keep the
// first move in center, corners, edges order.
func (that *Engine) BestMove(board entity.Board, mark entity.Mark) (int, error) {
	cell, _, err := that.search(board, mark)
	if err != nil {
		return -1, err
	}

	return cell, nil
}

// Score - the value of the best move for mark, seen from the maximizer.
func (that *Engine) Score(board entity.Board, mark entity.Mark) (int, error) {
	_, score, err := that.search(board, mark)
	if err != nil {
		return 0, err
	}

	return score, nil
}

func (that *Engine) search(board entity.Board, mark entity.Mark) (int, int, error) {
	if !mark.IsPlayer() {
		return -1, 0, fmt.Errorf("%w: got %d", ErrInvalidMark, mark)
	}

	for i, cell := range board {
		if !cell.Valid() {
			return -1, 0, fmt.Errorf("%w: cell %d holds %d", ErrInvalidBoard, i, uint8(cell))
		}
	}

	if outcome := Evaluate(board); outcome.IsTerminal() {
		return -1, 0, fmt.Errorf("%w: %s", ErrBoardTerminal, outcome)
	}

	maximizing := mark == that.maximizer

	bestCell := -1
	bestScore := math.MinInt
	if !maximizing {
		bestScore = math.MaxInt
	}

	for _, cell := range OrderedMoves(board) {
		board[cell] = mark
		score := that.minimax(board, !maximizing, 0)
		board[cell] = entity.Empty

		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore = score
			bestCell = cell
		}
	}

	return bestCell, bestScore, nil
}

// minimax - scores a position reached depth plies below the root's child. The board is the
// callee's own copy and is restored before return.
func (that *Engine) minimax(board entity.Board, maximizerToMove bool, depth int) int {
	if outcome := Evaluate(board); outcome.IsTerminal() {
		return that.terminalScore(outcome, depth)
	}

	key := CacheKey{Board: board, MaximizerToMove: maximizerToMove}
	if score, ok := that.cache.Load(key); ok {
		return score
	}

	mover := that.minimizer
	best := math.MaxInt
	if maximizerToMove {
		mover = that.maximizer
		best = math.MinInt
	}

	for _, cell := range OrderedMoves(board) {
		board[cell] = mover
		score := that.minimax(board, !maximizerToMove, depth+1)
		board[cell] = entity.Empty

		if maximizerToMove {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return that.cache.LoadOrStore(key, best)
}

func (that *Engine) terminalScore(outcome entity.Outcome, depth int) int {
	switch {
	case outcome.Kind == entity.Win && outcome.Winner == that.maximizer:
		return winScore - depth
	case outcome.Kind == entity.Win:
		return depth - winScore
	default:
		return 0
	}
}
