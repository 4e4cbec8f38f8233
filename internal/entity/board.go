package entity

import (
	"encoding/json"
	"fmt"
)

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

// WinCombos lists the lines in the order they are checked.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds the cells in row-major order: index = row*3 + col.
type Board [BoardSize]Mark

func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}

func (that Mark) Valid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}

// Winner returns the mark of the first complete line, or EmptyCell when there is none.
// A full board without a line is a draw and also yields EmptyCell.
func Winner(board Board) Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func ValidCell(index int) bool {
	return index >= 0 && index < BoardSize
}

// Coordinate is a 1-based (column, row) pair. The zero value marks "no move".
type Coordinate struct {
	Col int
	Row int
}

// CoordinateFromIndex maps a cell index to its 1-based (column, row).
// The index must be in [0, 9).
func CoordinateFromIndex(index int) Coordinate {
	if !ValidCell(index) {
		panic(fmt.Sprintf("cell index %d out of range [0, %d)", index, BoardSize))
	}

	return Coordinate{
		Col: index%BoardSide + 1,
		Row: index/BoardSide + 1,
	}
}

func (that Coordinate) IsZero() bool {
	return that == Coordinate{}
}

// Index is the inverse of CoordinateFromIndex; it returns -1 for coordinates off the board.
func (that Coordinate) Index() int {
	if that.Col < 1 || that.Col > BoardSide || that.Row < 1 || that.Row > BoardSide {
		return -1
	}

	return (that.Row-1)*BoardSide + (that.Col - 1)
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", that.Col, that.Row)
}

// MarshalJSON encodes the coordinate as [col,row], or [] for the zero value.
func (that Coordinate) MarshalJSON() ([]byte, error) {
	if that.IsZero() {
		return []byte("[]"), nil
	}

	return json.Marshal([2]int{that.Col, that.Row})
}

func (that *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to unmarshal coordinate: %w", err)
	}

	switch len(pair) {
	case 0:
		*that = Coordinate{}
	case 2:
		*that = Coordinate{Col: pair[0], Row: pair[1]}
	default:
		return fmt.Errorf("coordinate must have 0 or 2 elements, got %d", len(pair))
	}

	return nil
}
