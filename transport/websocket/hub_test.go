package websocket

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestHub_Publish(t *testing.T) {
	t.Run("Every subscriber of the session receives the render", func(t *testing.T) {
		// Given: two tabs of one session and a tab of another session
		hub := newTestHub()
		first := hub.Subscribe("s1")
		second := hub.Subscribe("s1")
		other := hub.Subscribe("s2")

		// When: a view is published for s1
		game := view.Render(entity.NewGameState())
		hub.Publish("s1", game)

		// Then: both s1 tabs get it and s2 gets nothing
		for _, sub := range []*Subscription{first, second} {
			select {
			case msg := <-sub.C():
				assert.Equal(t, actionRender, msg.Action)
				assert.Contains(t, msg.HTML, "Next player: X")
				require.NotNil(t, msg.View)
				assert.Equal(t, game, *msg.View)
			default:
				t.Fatal("expected a pushed message")
			}
		}

		assert.Empty(t, other.C())
	})

	t.Run("A full outbox drops pushes instead of blocking", func(t *testing.T) {
		hub := newTestHub()
		sub := hub.Subscribe("s1")
		game := view.Render(entity.NewGameState())

		for i := 0; i < outboxSize+3; i++ {
			hub.Publish("s1", game)
		}

		assert.Len(t, sub.C(), outboxSize)
	})
}

func TestHub_Unsubscribe(t *testing.T) {
	// Given: one subscriber
	hub := newTestHub()
	sub := hub.Subscribe("s1")
	require.Equal(t, 1, hub.Count("s1"))

	// When: it unsubscribes twice
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	// Then: its channel is closed and the session has no subscribers
	_, ok := <-sub.C()
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Count("s1"))

	// And: publishing afterwards is harmless
	hub.Publish("s1", view.Render(entity.NewGameState()))
}

func TestDecodeAction(t *testing.T) {
	action, err := decodeAction([]byte(`{"action":"jump","index":2}`))
	require.NoError(t, err)
	assert.Equal(t, view.JumpAction(2), action)

	_, err = decodeAction([]byte(`{"action":`))
	require.Error(t, err)
}
