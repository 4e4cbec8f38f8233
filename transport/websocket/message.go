package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

const (
	actionRender = "render"
	actionError  = "error"
)

// Message is what the server pushes to the page.
type Message struct {
	Action string     `json:"action"`
	HTML   string     `json:"html,omitempty"`
	View   *view.Game `json:"view,omitempty"`
	Error  string     `json:"error,omitempty"`
}

func renderMessage(game view.Game) (Message, error) {
	html, err := view.Fragment(game)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Action: actionRender,
		HTML:   html,
		View:   &game,
	}, nil
}

func errorMessage(text string) Message {
	return Message{Action: actionError, Error: text}
}

func decodeAction(data []byte) (view.Action, error) {
	var action view.Action
	if err := json.Unmarshal(data, &action); err != nil {
		return view.Action{}, fmt.Errorf("failed to unmarshal action: %w", err)
	}

	return action, nil
}
