package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Evaluate - returns the verdict for a board: the first uniformly occupied line wins,
// a full board without one is a draw.
func Evaluate(board entity.Board) entity.Outcome {
	for _, line := range entity.Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.Empty && a == b && b == c {
			return entity.WinFor(a)
		}
	}

	if board.IsFull() {
		return entity.DrawOutcome()
	}

	return entity.InProgressOutcome()
}
