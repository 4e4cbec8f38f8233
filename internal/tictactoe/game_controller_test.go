package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, controller *GameController, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, controller.Move(cell), "move to cell %d", cell)
	}
}

func TestNewGameController(t *testing.T) {
	// Given: a controller without a state
	controller := NewGameController(nil)

	// Then: it starts on the empty board with X to move
	assert.Equal(t, 1, controller.Len())
	assert.Equal(t, 0, controller.StepNumber())
	assert.Equal(t, entity.Board{}, controller.Current().Squares)
	assert.Equal(t, "Next player: X", controller.Status())
}

func TestGameController_Move(t *testing.T) {
	t.Run("First move places X and passes the turn to O", func(t *testing.T) {
		// Given: an empty board
		controller := NewGameController(nil)

		// When: X plays cell 0
		err := controller.Move(0)
		require.NoError(t, err)

		// Then: the board, step and status reflect the move
		assert.Equal(t, entity.Board{entity.PlayerX}, controller.Current().Squares)
		assert.Equal(t, entity.Coordinate{Col: 1, Row: 1}, controller.Current().Select)
		assert.Equal(t, 1, controller.StepNumber())
		assert.Equal(t, "Next player: O", controller.Status())
	})

	t.Run("History grows by one per accepted move", func(t *testing.T) {
		controller := NewGameController(nil)

		for i, cell := range []int{4, 0, 8, 2} {
			require.NoError(t, controller.Move(cell))
			assert.Equal(t, i+2, controller.Len())
			assert.Equal(t, i+1, controller.StepNumber())
		}
	})

	t.Run("Diagonal 0-4-8 wins for X", func(t *testing.T) {
		// Given: X on 0, 4, 8 and O on 3, 5
		controller := NewGameController(nil)
		play(t, controller, 0, 3, 4, 5, 8)

		// Then: X is reported as winner
		assert.Equal(t, entity.PlayerX, controller.Winner())
		assert.Equal(t, "Winner: X", controller.Status())
	})

	t.Run("Move on an occupied cell is rejected and changes nothing", func(t *testing.T) {
		// Given: X on cell 0
		controller := NewGameController(nil)
		play(t, controller, 0)
		before := controller.Snapshot()

		// When: O tries cell 0
		err := controller.Move(0)

		// Then: ErrCellOccupied is returned and the state is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, controller.Snapshot())
	})

	t.Run("Move after a win is rejected for every empty cell", func(t *testing.T) {
		// Given: X won on the top row
		controller := NewGameController(nil)
		play(t, controller, 0, 3, 1, 4, 2)
		before := controller.Snapshot()

		for cell := 5; cell < entity.BoardSize; cell++ {
			// When: the next player clicks an empty cell
			err := controller.Move(cell)

			// Then: ErrGameFinished is returned and the state is unchanged
			require.ErrorIs(t, err, apperror.ErrGameFinished)
			assert.Equal(t, before, controller.Snapshot())
		}
	})

	t.Run("Invalid cell index is rejected", func(t *testing.T) {
		controller := NewGameController(nil)

		assert.ErrorIs(t, controller.Move(9), apperror.ErrInvalidCell)
		assert.ErrorIs(t, controller.Move(-1), apperror.ErrInvalidCell)
		assert.Equal(t, 1, controller.Len())
	})

	t.Run("Full board without a winner still reports the next player", func(t *testing.T) {
		// Given: a drawn game
		controller := NewGameController(nil)
		play(t, controller, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: there is no draw status
		assert.True(t, controller.Current().Squares.IsFull())
		assert.Equal(t, entity.EmptyCell, controller.Winner())
		assert.Equal(t, "Next player: O", controller.Status())
	})
}

func TestGameController_JumpTo(t *testing.T) {
	t.Run("Jump to the current step is a no-op", func(t *testing.T) {
		controller := NewGameController(nil)
		play(t, controller, 0, 1)
		before := controller.Snapshot()

		require.NoError(t, controller.JumpTo(controller.StepNumber()))

		assert.Equal(t, before, controller.Snapshot())
	})

	t.Run("Jump changes the displayed board but not the history", func(t *testing.T) {
		// Given: three moves
		controller := NewGameController(nil)
		play(t, controller, 0, 4, 8)

		// When: jumping back to step 1
		require.NoError(t, controller.JumpTo(1))

		// Then: only the first move is displayed and history is intact
		assert.Equal(t, 1, controller.StepNumber())
		assert.Equal(t, entity.Board{entity.PlayerX}, controller.Current().Squares)
		assert.Equal(t, 4, controller.Len())
		assert.Equal(t, "Next player: O", controller.Status())
	})

	t.Run("Move after a jump truncates the discarded future", func(t *testing.T) {
		// Given: three moves and a jump back to step 1
		controller := NewGameController(nil)
		play(t, controller, 0, 4, 8)
		require.NoError(t, controller.JumpTo(1))

		// When: O plays cell 5
		require.NoError(t, controller.Move(5))

		// Then: history is k+2 long and the new entry sits at index 2
		snapshot := controller.Snapshot()
		require.Len(t, snapshot.History, 3)
		assert.Equal(t, 2, snapshot.StepNumber)
		assert.Equal(t, entity.Board{entity.PlayerX, "", "", "", "", entity.PlayerO}, snapshot.History[2].Squares)
		assert.Equal(t, entity.Coordinate{Col: 3, Row: 2}, snapshot.History[2].Select)
		require.NoError(t, snapshot.Validate())
	})

	t.Run("Jump back before a win reopens the board", func(t *testing.T) {
		controller := NewGameController(nil)
		play(t, controller, 0, 3, 1, 4, 2)

		require.NoError(t, controller.JumpTo(4))

		assert.Equal(t, "Next player: X", controller.Status())
		require.NoError(t, controller.Move(8))
		assert.Equal(t, 6, controller.Len())
	})

	t.Run("Out of range step is rejected", func(t *testing.T) {
		controller := NewGameController(nil)

		assert.ErrorIs(t, controller.JumpTo(1), apperror.ErrInvalidStep)
		assert.ErrorIs(t, controller.JumpTo(-1), apperror.ErrInvalidStep)
		assert.Equal(t, 0, controller.StepNumber())
	})
}

func TestGameController_Snapshot(t *testing.T) {
	// Given: a snapshot taken before a move
	controller := NewGameController(nil)
	snapshot := controller.Snapshot()

	// When: the controller moves
	play(t, controller, 4)

	// Then: the snapshot is unaffected
	assert.Len(t, snapshot.History, 1)
	assert.Equal(t, 0, snapshot.StepNumber)
}
