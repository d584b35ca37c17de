package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MakeTurn - the only operation that mutates a live board.
func MakeTurn(game *entity.Game, mark entity.Mark, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(game, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board[cell] = mark
	updateGameStatus(game, mark)

	return nil
}

// Reset - returns the game to an empty board with the first mark to move. Mode and bot mark are kept.
func Reset(game *entity.Game) {
	game.Board = entity.Board{}
	game.Turn = entity.FirstMark
	game.Outcome = entity.InProgressOutcome()
	game.Status = entity.StatusOngoing
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, mark entity.Mark, cell int) error {
	if !entity.IsCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if game.Board[cell] != entity.Empty {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, mark entity.Mark) {
	outcome := Evaluate(game.Board)
	game.Outcome = outcome

	if outcome.IsTerminal() {
		game.Status = entity.StatusFinished
		game.Turn = entity.Empty
		return
	}

	game.Turn = mark.Opponent()
}
