package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type moveSearcher interface {
	BestMove(board entity.Board, mark entity.Mark) (int, error)
}

// GameManager runs live sessions. In bot mode the computer answers each human move after
// replyDelay without holding up the caller; the answer goes to the session's subscriber.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	bot        moveSearcher
	botMark    entity.Mark
	replyDelay time.Duration

	// serializes read-modify-write of sessions
	mu sync.Mutex

	subMu       sync.RWMutex
	subscribers map[string]func(game *entity.Game)
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bot moveSearcher, botMark entity.Mark, replyDelay time.Duration) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game-manager"),
		gameRepo: gameRepo,

		bot:        bot,
		botMark:    botMark,
		replyDelay: replyDelay,

		subscribers: make(map[string]func(*entity.Game)),
	}
}

func (that *GameManager) CreateGame(ctx context.Context, mode string) (*entity.Game, error) {
	if !entity.ValidMode(mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	game := entity.NewGame(uuid.NewString(), mode, that.botMark)
	game.Outcome = entity.InProgressOutcome()

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "mode", mode)

	that.scheduleBotTurn(ctx, game)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - places the human's mark. In human mode that is whoever holds the turn.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsBotTurn() {
		return nil, apperror.ErrNotYourTurn
	}

	if err = tictactoe.MakeTurn(game, game.HumanMark(), cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "outcome", game.Outcome.String())
	}

	that.scheduleBotTurn(ctx, game)

	return game, nil
}

// Reset - starts the session over with the same mode ("play again").
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	tictactoe.Reset(game)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.scheduleBotTurn(ctx, game)

	return game, nil
}

// SetMode - switches between human and bot opponents. Switching restarts the game.
func (that *GameManager) SetMode(ctx context.Context, id, mode string) (*entity.Game, error) {
	if !entity.ValidMode(mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Mode = mode
	game.BotMark = entity.Empty
	if game.IsWithBot() {
		game.BotMark = that.botMark
	}

	tictactoe.Reset(game)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.scheduleBotTurn(ctx, game)

	return game, nil
}

// EndGame - forgets the session and its subscriber.
func (that *GameManager) EndGame(ctx context.Context, id string) error {
	that.Unsubscribe(id)

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// Subscribe - fn receives the session after every computer move. One subscriber per session.
func (that *GameManager) Subscribe(id string, fn func(game *entity.Game)) {
	that.subMu.Lock()
	defer that.subMu.Unlock()

	that.subscribers[id] = fn
}

func (that *GameManager) Unsubscribe(id string) {
	that.subMu.Lock()
	defer that.subMu.Unlock()

	delete(that.subscribers, id)
}

func (that *GameManager) scheduleBotTurn(ctx context.Context, game *entity.Game) {
	if !game.IsBotTurn() {
		return
	}

	id := game.ID
	detached := context.WithoutCancel(ctx)

	time.AfterFunc(that.replyDelay, func() {
		that.botTurn(detached, id)
	})
}

func (that *GameManager) botTurn(ctx context.Context, id string) {
	log := that.logger.With("method", "botTurn", "gameID", id)

	game, err := that.playBotTurn(ctx, id)
	if errors.Is(err, apperror.ErrGameNotFound) {
		log.Debug("bot turn skipped, game ended")
		return
	}

	if err != nil {
		log.Error("bot failed to make turn", "error", err)
		return
	}

	if game == nil {
		log.Debug("bot turn skipped, game moved on")
		return
	}

	that.subMu.RLock()
	notify, ok := that.subscribers[id]
	that.subMu.RUnlock()

	if ok {
		notify(game)
	}
}

// playBotTurn - returns nil without error when it is no longer the bot's turn.
func (that *GameManager) playBotTurn(ctx context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if !game.IsBotTurn() {
		return nil, nil
	}

	cell, err := that.bot.BestMove(game.Board, game.BotMark)
	if err != nil {
		return nil, fmt.Errorf("failed to find bot move: %w", err)
	}

	if err = tictactoe.MakeTurn(game, game.BotMark, cell); err != nil {
		return nil, fmt.Errorf("failed to make bot turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Debug("bot moved", "gameID", id, "cell", cell, "status", game.Status)

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
