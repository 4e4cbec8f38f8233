package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameState(t *testing.T) {
	// Given: a new game
	state := NewGameState()

	// Then: history holds only the empty board and X moves first
	require.Len(t, state.History, 1)
	assert.Equal(t, Board{}, state.Current().Squares)
	assert.True(t, state.Current().Select.IsZero())
	assert.Equal(t, 0, state.StepNumber)
	assert.Equal(t, PlayerX, state.NextMark())
	require.NoError(t, state.Validate())
}

func TestGameState_Clone(t *testing.T) {
	// Given: a state and its clone
	state := NewGameState()
	clone := state.Clone()

	// When: the clone's history is changed
	clone.History[0].Squares[0] = PlayerX
	clone.History = append(clone.History, HistoryEntry{})

	// Then: the original is untouched
	assert.Equal(t, EmptyCell, state.History[0].Squares[0])
	assert.Len(t, state.History, 1)
}

func TestGameState_Validate(t *testing.T) {
	valid := func() *GameState {
		return &GameState{
			History: []HistoryEntry{
				{},
				{Squares: Board{PlayerX}, Select: Coordinate{1, 1}},
				{Squares: Board{PlayerX, PlayerO}, Select: Coordinate{2, 1}},
			},
			StepNumber: 1,
		}
	}

	t.Run("Accepts a state produced by normal play", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(state *GameState)
	}{
		{"empty history", func(s *GameState) { s.History = nil }},
		{"step past the end", func(s *GameState) { s.StepNumber = 3 }},
		{"negative step", func(s *GameState) { s.StepNumber = -1 }},
		{"non-empty first board", func(s *GameState) { s.History[0].Squares[4] = PlayerO }},
		{"first entry with a select", func(s *GameState) { s.History[0].Select = Coordinate{1, 1} }},
		{"wrong mark for parity", func(s *GameState) { s.History[1].Squares[0] = PlayerO }},
		{"select off the board", func(s *GameState) { s.History[2].Select = Coordinate{} }},
		{"select not matching the changed cell", func(s *GameState) { s.History[2].Select = Coordinate{3, 3} }},
		{"two cells changed", func(s *GameState) { s.History[2].Squares[8] = PlayerO }},
		{"unknown mark", func(s *GameState) { s.History[2].Squares[1] = "Z" }},
	}

	for _, tt := range tests {
		t.Run("Rejects "+tt.name, func(t *testing.T) {
			// Given: a state violating an invariant
			state := valid()
			tt.mutate(state)

			// When: validating it
			err := state.Validate()

			// Then: ErrCorruptedState is returned
			assert.ErrorIs(t, err, apperror.ErrCorruptedState)
		})
	}

	t.Run("Rejects a move recorded after a win", func(t *testing.T) {
		// Given: X completed the top row, then O played anyway
		state := &GameState{History: []HistoryEntry{{}}}
		board := Board{}
		for n, cell := range []int{0, 3, 1, 4, 2, 5} {
			board[cell] = MarkForStep(n)
			state.History = append(state.History, HistoryEntry{Squares: board, Select: CoordinateFromIndex(cell)})
		}

		// Then: the trailing move is flagged
		assert.ErrorIs(t, state.Validate(), apperror.ErrCorruptedState)
	})
}

func TestGameState_JSON(t *testing.T) {
	// Given: a state with one move
	state := &GameState{
		History: []HistoryEntry{
			{},
			{Squares: Board{EmptyCell, EmptyCell, EmptyCell, EmptyCell, PlayerX}, Select: CoordinateFromIndex(4)},
		},
		StepNumber: 1,
	}

	// When: it is encoded
	data, err := json.Marshal(state)
	require.NoError(t, err)

	// Then: the stored form matches the documented layout
	assert.JSONEq(t, `{
		"history": [
			{"squares": ["","","","","","","","",""], "select": []},
			{"squares": ["","","","","X","","","",""], "select": [2,2]}
		],
		"step_number": 1
	}`, string(data))

	// And: it decodes back to the same state
	var decoded GameState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, state, &decoded)
}
