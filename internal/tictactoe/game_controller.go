package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// GameController owns a GameState and is the only thing that mutates it.
type GameController struct {
	state *entity.GameState
}

func NewGameController(state *entity.GameState) *GameController {
	if state == nil {
		state = entity.NewGameState()
	}

	return &GameController{state: state}
}

// Move places the next mark on cell. The state is left untouched when the move is rejected.
func (that *GameController) Move(cell int) error {
	if err := that.validateMove(cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	current := that.state.Current()
	squares := current.Squares
	squares[cell] = that.state.NextMark()

	// a move after a jump discards the entries past the displayed step
	keep := that.state.StepNumber + 1
	that.state.History = append(that.state.History[:keep:keep], entity.HistoryEntry{
		Squares: squares,
		Select:  entity.CoordinateFromIndex(cell),
	})
	that.state.StepNumber = len(that.state.History) - 1

	return nil
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(cell int) error {
	if !entity.ValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	squares := that.state.Current().Squares

	if entity.Winner(squares) != entity.EmptyCell {
		return apperror.ErrGameFinished
	}

	if !squares[cell].IsEmpty() {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// JumpTo displays the given step. History is never changed by a jump.
func (that *GameController) JumpTo(step int) error {
	if step < 0 || step >= len(that.state.History) {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, len(that.state.History))
	}

	that.state.StepNumber = step

	return nil
}

func (that *GameController) StepNumber() int {
	return that.state.StepNumber
}

func (that *GameController) Len() int {
	return len(that.state.History)
}

func (that *GameController) Current() entity.HistoryEntry {
	return that.state.Current()
}

func (that *GameController) Winner() entity.Mark {
	return entity.Winner(that.state.Current().Squares)
}

// Status is recomputed from the displayed step on every call.
func (that *GameController) Status() string {
	return Status(that.state)
}

// Status describes the displayed step: the winner if there is one, otherwise who moves next.
// A drawn board falls through to the next-player message.
func Status(state *entity.GameState) string {
	if winner := entity.Winner(state.Current().Squares); winner != entity.EmptyCell {
		return "Winner: " + string(winner)
	}

	return "Next player: " + string(state.NextMark())
}

// Snapshot returns a copy of the state for readers such as renderers and stores.
func (that *GameController) Snapshot() *entity.GameState {
	return that.state.Clone()
}
