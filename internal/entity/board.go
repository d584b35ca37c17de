package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const BoardSize = 9

type Mark uint8

const (
	Empty Mark = iota
	PlayerX
	PlayerO
)

var ErrUnknownMark = errors.New("unknown mark")

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Opponent - returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (that Mark) Valid() bool {
	return that <= PlayerO
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func ParseMark(value string) (Mark, error) {
	switch value {
	case "X", "x":
		return PlayerX, nil
	case "O", "o":
		return PlayerO, nil
	case "", "_", "-":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownMark, value)
	}
}

func (that Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("mark must be a string: %w", err)
	}

	mark, err := ParseMark(value)
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

// Line is a triple of cell indices that wins when uniformly occupied.
type Line [3]int

// Lines - every winning geometry in scan order: rows, columns, diagonals.
var Lines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds the 9 cells row-major: row = index/3, col = index%3.
type Board [BoardSize]Mark

var ErrMalformedBoard = errors.New("malformed board")

func Row(cell int) int {
	return cell / 3
}

func Col(cell int) int {
	return cell % 3
}

func IsCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, mark := range that {
		if mark == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, mark := range that {
		if mark == Empty {
			return false
		}
	}

	return true
}

func (that Board) IsEmpty() bool {
	return that == Board{}
}

// Valid reports whether every cell holds Empty, X or O.
func (that Board) Valid() bool {
	for _, mark := range that {
		if !mark.Valid() {
			return false
		}
	}

	return true
}

// String - compact form, "_" stands for an empty cell: "XO__X___O".
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, mark := range that {
		if mark == Empty {
			sb.WriteByte('_')
			continue
		}
		sb.WriteString(mark.String())
	}

	return sb.String()
}

// ParseBoard - reverse of Board.String.
func ParseBoard(value string) (Board, error) {
	var board Board

	if len(value) != BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", ErrMalformedBoard, BoardSize, len(value))
	}

	for i := range value {
		mark, err := ParseMark(value[i : i+1])
		if err != nil {
			return Board{}, fmt.Errorf("%w: cell %d: %w", ErrMalformedBoard, i, err)
		}
		board[i] = mark
	}

	return board, nil
}

// UnmarshalJSON - accepts exactly BoardSize marks, a shorter or longer array is malformed.
func (that *Board) UnmarshalJSON(data []byte) error {
	var marks []Mark
	if err := json.Unmarshal(data, &marks); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBoard, err)
	}

	if len(marks) != BoardSize {
		return fmt.Errorf("%w: expected %d cells, got %d", ErrMalformedBoard, BoardSize, len(marks))
	}

	copy(that[:], marks)

	return nil
}
