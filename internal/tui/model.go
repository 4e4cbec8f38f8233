// Package tui hosts the game in a terminal. Every key press dispatches a
// view.Action to the controller and the board is re-rendered from a fresh snapshot.
package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

type focus int

const (
	focusBoard focus = iota
	focusHistory
)

type Model struct {
	logger     *slog.Logger
	controller *tictactoe.GameController
	game       view.Game

	cursor   int
	selected int
	focus    focus

	keys   keyMap
	help   help.Model
	styles styles
}

func New(logger *slog.Logger, controller *tictactoe.GameController) *Model {
	m := &Model{
		logger:     logger.With("component", "tui"),
		controller: controller,
		cursor:     entity.BoardSize / 2,
		keys:       defaultKeyMap(),
		help:       help.New(),
		styles:     defaultStyles(),
	}
	m.render()

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Focus):
			m.toggleFocus()
		case key.Matches(msg, m.keys.Back):
			m.dispatch(view.JumpAction(m.game.StepNumber - 1))
		case key.Matches(msg, m.keys.Forward):
			m.dispatch(view.JumpAction(m.game.StepNumber + 1))
		case m.focus == focusBoard:
			m.updateBoard(msg)
		default:
			m.updateHistory(msg)
		}
	}

	return m, nil
}

func (m *Model) updateBoard(msg tea.KeyMsg) {
	row, col := m.cursor/entity.BoardSide, m.cursor%entity.BoardSide

	switch {
	case key.Matches(msg, m.keys.Up):
		row = max(row-1, 0)
	case key.Matches(msg, m.keys.Down):
		row = min(row+1, entity.BoardSide-1)
	case key.Matches(msg, m.keys.Left):
		col = max(col-1, 0)
	case key.Matches(msg, m.keys.Right):
		col = min(col+1, entity.BoardSide-1)
	case key.Matches(msg, m.keys.Select):
		m.dispatch(view.MoveAction(m.cursor))
		return
	}

	m.cursor = row*entity.BoardSide + col
}

func (m *Model) updateHistory(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.selected = max(m.selected-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.selected = min(m.selected+1, len(m.game.History)-1)
	case key.Matches(msg, m.keys.Select):
		m.dispatch(view.JumpAction(m.selected))
	}
}

func (m *Model) toggleFocus() {
	if m.focus == focusBoard {
		m.focus = focusHistory
		m.selected = m.game.StepNumber
		return
	}

	m.focus = focusBoard
}

// dispatch applies action and redraws. Rejected actions change nothing.
func (m *Model) dispatch(action view.Action) {
	if err := view.Dispatch(m.controller, action); err != nil {
		if apperror.IsRejected(err) {
			m.logger.Debug("action ignored", "action", action.Type, "index", action.Index, "reason", err)
		} else {
			m.logger.Error("failed to dispatch action", "error", err)
		}
	}

	m.render()
}

func (m *Model) render() {
	m.game = view.Render(m.controller.Snapshot())
	m.selected = min(m.selected, len(m.game.History)-1)
}

func (m *Model) View() string {
	board := m.viewBoard()
	info := m.viewInfo()

	boardPane, infoPane := m.styles.activePane, m.styles.pane
	if m.focus == focusHistory {
		boardPane, infoPane = m.styles.pane, m.styles.activePane
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, boardPane.Render(board), " ", infoPane.Render(info))

	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys)) + "\n"
}

func (m *Model) viewBoard() string {
	rows := make([]string, 0, len(m.game.Board.Rows))

	for _, row := range m.game.Board.Rows {
		cells := make([]string, 0, len(row.Cells))

		for _, cell := range row.Cells {
			style := m.styles.cell
			if m.focus == focusBoard && cell.Index == m.cursor {
				style = m.styles.cursor
			}

			cells = append(cells, style.Render(m.viewMark(cell.Mark)))
		}

		rows = append(rows, strings.Join(cells, "│"))
	}

	return strings.Join(rows, "\n───┼───┼───\n")
}

func (m *Model) viewMark(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return m.styles.markX.Render(string(mark))
	case entity.PlayerO:
		return m.styles.markO.Render(string(mark))
	default:
		return " "
	}
}

func (m *Model) viewInfo() string {
	var sb strings.Builder

	status := m.styles.status
	if m.game.Winner != entity.EmptyCell {
		status = m.styles.winner
	}
	sb.WriteString(status.Render(m.game.Status))
	sb.WriteString("\n")

	for i, item := range m.game.History {
		style := m.styles.item
		if item.Current {
			style = m.styles.current
		}

		line := style.Render(item.Label)
		if m.focus == focusHistory && i == m.selected {
			line = m.styles.selected.Render(item.Label)
		}

		prefix := "  "
		if item.Current {
			prefix = "▸ "
		}

		sb.WriteString(prefix)
		sb.WriteString(line)
		if i < len(m.game.History)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
