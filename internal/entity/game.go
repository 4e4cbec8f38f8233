package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

// HistoryEntry is the board after a move and the coordinate of that move.
type HistoryEntry struct {
	Squares Board      `json:"squares"`
	Select  Coordinate `json:"select"`
}

// GameState is the whole game: every snapshot played so far and the one on display.
type GameState struct {
	History    []HistoryEntry `json:"history"`
	StepNumber int            `json:"step_number"`
}

func NewGameState() *GameState {
	return &GameState{
		History:    []HistoryEntry{{}},
		StepNumber: 0,
	}
}

func (that *GameState) Current() HistoryEntry {
	return that.History[that.StepNumber]
}

// NextMark is derived from the step parity: X moves on even steps.
func (that *GameState) NextMark() Mark {
	return MarkForStep(that.StepNumber)
}

func MarkForStep(step int) Mark {
	if step%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// Clone returns a deep copy so snapshots handed to renderers cannot alias the owner's history.
func (that *GameState) Clone() *GameState {
	history := make([]HistoryEntry, len(that.History))
	copy(history, that.History)

	return &GameState{
		History:    history,
		StepNumber: that.StepNumber,
	}
}

// Validate checks the invariants a state restored from storage must satisfy.
func (that *GameState) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: empty history", apperror.ErrCorruptedState)
	}

	if that.StepNumber < 0 || that.StepNumber >= len(that.History) {
		return fmt.Errorf("%w: step %d outside history of %d", apperror.ErrCorruptedState, that.StepNumber, len(that.History))
	}

	first := that.History[0]
	if first.Squares != (Board{}) || !first.Select.IsZero() {
		return fmt.Errorf("%w: first entry is not an empty board", apperror.ErrCorruptedState)
	}

	for n := 1; n < len(that.History); n++ {
		if err := validateStep(that.History[n-1], that.History[n], MarkForStep(n-1)); err != nil {
			return fmt.Errorf("%w: entry %d: %w", apperror.ErrCorruptedState, n, err)
		}
	}

	return nil
}

func validateStep(prev, next HistoryEntry, mark Mark) error {
	if winner := Winner(prev.Squares); winner != EmptyCell {
		return fmt.Errorf("move recorded after %s won", winner)
	}

	index := next.Select.Index()
	if !ValidCell(index) {
		return fmt.Errorf("select %s is not on the board", next.Select)
	}

	if !prev.Squares[index].IsEmpty() {
		return fmt.Errorf("cell %d was already occupied", index)
	}

	for i := range next.Squares {
		if !next.Squares[i].Valid() {
			return fmt.Errorf("cell %d holds unknown mark %q", i, next.Squares[i])
		}

		want := prev.Squares[i]
		if i == index {
			want = mark
		}

		if next.Squares[i] != want {
			return fmt.Errorf("cell %d is %q, expected %q", i, next.Squares[i], want)
		}
	}

	return nil
}
