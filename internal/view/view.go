// Package view projects a game state into a description hosts can draw.
// Render is pure: hosts call it again whenever the state changes.
package view

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

// Cell is keyed by its board index.
type Cell struct {
	Index  int         `json:"index"`
	Mark   entity.Mark `json:"mark"`
	Action Action      `json:"on_click"`
}

// Row is keyed by the index of its first cell.
type Row struct {
	Key   int    `json:"key"`
	Cells []Cell `json:"cells"`
}

type Board struct {
	Rows []Row `json:"rows"`
}

// HistoryItem is keyed by its move number.
type HistoryItem struct {
	Move    int    `json:"move"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
	Action  Action `json:"on_click"`
}

type Game struct {
	Board      Board         `json:"board"`
	Status     string        `json:"status"`
	History    []HistoryItem `json:"history"`
	StepNumber int           `json:"step_number"`
	Winner     entity.Mark   `json:"winner,omitempty"`
}

func RenderCell(index int, mark entity.Mark, action Action) Cell {
	return Cell{
		Index:  index,
		Mark:   mark,
		Action: action,
	}
}

// RenderBoard lays the cells out in rows using index = row*3 + col.
func RenderBoard(squares entity.Board, actionFor func(cell int) Action) Board {
	rows := make([]Row, 0, entity.BoardSide)

	for row := 0; row < entity.BoardSide; row++ {
		start := row * entity.BoardSide
		cells := make([]Cell, 0, entity.BoardSide)

		for col := 0; col < entity.BoardSide; col++ {
			index := start + col
			cells = append(cells, RenderCell(index, squares[index], actionFor(index)))
		}

		rows = append(rows, Row{Key: start, Cells: cells})
	}

	return Board{Rows: rows}
}

func HistoryLabel(move int, entry entity.HistoryEntry) string {
	if move == 0 {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d %s", move, entry.Select)
}

func RenderHistory(history []entity.HistoryEntry, current int) []HistoryItem {
	items := make([]HistoryItem, 0, len(history))

	for move, entry := range history {
		items = append(items, HistoryItem{
			Move:    move,
			Label:   HistoryLabel(move, entry),
			Current: move == current,
			Action:  JumpAction(move),
		})
	}

	return items
}

func Render(state *entity.GameState) Game {
	current := state.Current()

	return Game{
		Board:      RenderBoard(current.Squares, MoveAction),
		Status:     tictactoe.Status(state),
		History:    RenderHistory(state.History, state.StepNumber),
		StepNumber: state.StepNumber,
		Winner:     entity.Winner(current.Squares),
	}
}
