package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// moveOrder - center, corners, edges. Governs tie-breaks between equally scored moves.
var moveOrder = [entity.BoardSize]int{4, 0, 2, 6, 8, 1, 3, 5, 7}

// OrderedMoves - empty cells of the board in search order.
func OrderedMoves(board entity.Board) []int {
	moves := make([]int, 0, entity.BoardSize)
	for _, cell := range moveOrder {
		if board[cell] == entity.Empty {
			moves = append(moves, cell)
		}
	}

	return moves
}
