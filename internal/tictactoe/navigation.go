package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	KeyLeft  = "ArrowLeft"
	KeyRight = "ArrowRight"
	KeyUp    = "ArrowUp"
	KeyDown  = "ArrowDown"
)

// Neighbor - the cell focus moves to when key is pressed on cell. Movement stops at the grid
// edge instead of wrapping; keys other than arrows keep the focus where it is.
func Neighbor(cell int, key string) (int, error) {
	if !entity.IsCell(cell) {
		return cell, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	row, col := entity.Row(cell), entity.Col(cell)

	switch key {
	case KeyLeft:
		col = max(0, col-1)
	case KeyRight:
		col = min(2, col+1)
	case KeyUp:
		row = max(0, row-1)
	case KeyDown:
		row = min(2, row+1)
	}

	return row*3 + col, nil
}
