package view

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

var ErrUnknownAction = errors.New("unknown action")

type ActionType string

const (
	ActionMove ActionType = "move"
	ActionJump ActionType = "jump"
)

// Action is what a host dispatches when the user activates an element.
type Action struct {
	Type  ActionType `json:"action"`
	Index int        `json:"index"`
}

func MoveAction(cell int) Action {
	return Action{Type: ActionMove, Index: cell}
}

func JumpAction(step int) Action {
	return Action{Type: ActionJump, Index: step}
}

// Path is the form endpoint that performs the action without scripting.
func (that Action) Path() string {
	return fmt.Sprintf("/%s/%d", that.Type, that.Index)
}

// Dispatch runs action against controller. Rejections come back as apperror sentinels.
func Dispatch(controller *tictactoe.GameController, action Action) error {
	switch action.Type {
	case ActionMove:
		return controller.Move(action.Index)
	case ActionJump:
		return controller.JumpTo(action.Index)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}
}
