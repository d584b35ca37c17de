package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()
	gameRepo := NewGameRepository()

	// Given: a game with ID and status
	game := entity.NewGame("123", entity.HumanMode, entity.Empty)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned, and game is stored
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository()

		// Given: a stored game
		game := entity.NewGame("123", entity.BotMode, entity.PlayerO)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		require.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_ReturnsCopy", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository()

		// Given: a stored game
		game := entity.NewGame("123", entity.HumanMode, entity.Empty)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the retrieved copy is changed without saving
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		retrievedGame.Board[0] = entity.PlayerX

		// Then: the stored game is untouched
		storedGame, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.True(t, storedGame.Board.IsEmpty())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository()

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository()

		// Given: a stored game
		game := entity.NewGame("123", entity.HumanMode, entity.Empty)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository()

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
