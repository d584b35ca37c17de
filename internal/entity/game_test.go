package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

func TestNewGame(t *testing.T) {
	t.Run("Human game has no bot mark", func(t *testing.T) {
		// When: a human-vs-human game is created
		game := NewGame("123", HumanMode, PlayerO)

		// Then: the game starts empty with X to move and no bot
		expectedGame := &Game{
			ID:     "123",
			Turn:   PlayerX,
			Status: StatusOngoing,
			Mode:   HumanMode,
		}

		require.Equal(t, expectedGame, game)
	})

	t.Run("Bot game keeps the bot mark", func(t *testing.T) {
		// When: a human-vs-computer game is created
		game := NewGame("123", BotMode, PlayerO)

		// Then: the bot mark is recorded and X still moves first
		assert.Equal(t, PlayerO, game.BotMark)
		assert.Equal(t, PlayerX, game.Turn)
		assert.True(t, game.Board.IsEmpty())
	})
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should be finished and not ongoing
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		// Given: a game with StatusOngoing
		game := &Game{Status: StatusOngoing}

		// Then: it should be ongoing
		assert.True(t, game.IsOngoing())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.ErrorIs(t, err, apperror.ErrUnknownGameStatus)
		assert.Contains(t, err.Error(), "unknown")
	})
}

func TestGame_BotTurn(t *testing.T) {
	t.Run("Bot moves when it holds the turn", func(t *testing.T) {
		// Given: a bot game where O is the computer and it is O's turn
		game := NewGame("1", BotMode, PlayerO)
		game.Turn = PlayerO

		// Then: it is the bot's turn and the human plays X
		assert.True(t, game.IsBotTurn())
		assert.Equal(t, PlayerX, game.HumanMark())
	})

	t.Run("Human game never has a bot turn", func(t *testing.T) {
		// Given: a human-vs-human game on O's turn
		game := NewGame("1", HumanMode, PlayerO)
		game.Turn = PlayerO

		// Then: nobody is a bot and the human mark follows the turn
		assert.False(t, game.IsBotTurn())
		assert.Equal(t, PlayerO, game.HumanMark())
	})

	t.Run("Finished game has no bot turn", func(t *testing.T) {
		game := NewGame("1", BotMode, PlayerO)
		game.Turn = PlayerO
		game.Status = StatusFinished

		assert.False(t, game.IsBotTurn())
	})
}
