package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

const outboxSize = 8

// Subscription receives the pushes for one connection.
type Subscription struct {
	sessionID string
	outbox    chan Message
}

func (that *Subscription) C() <-chan Message {
	return that.outbox
}

// send never blocks; a full outbox drops the message.
func (that *Subscription) send(msg Message) bool {
	select {
	case that.outbox <- msg:
		return true
	default:
		return false
	}
}

// Hub fans re-rendered views out to every connection of a session.
type Hub struct {
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[string]map[*Subscription]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "hub"),
		subscribers: make(map[string]map[*Subscription]struct{}),
	}
}

func (that *Hub) Subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		sessionID: sessionID,
		outbox:    make(chan Message, outboxSize),
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	subs, ok := that.subscribers[sessionID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		that.subscribers[sessionID] = subs
	}
	subs[sub] = struct{}{}

	return sub
}

// Unsubscribe removes sub and closes its channel. Calling it twice is safe.
func (that *Hub) Unsubscribe(sub *Subscription) {
	that.mu.Lock()
	defer that.mu.Unlock()

	subs, ok := that.subscribers[sub.sessionID]
	if !ok {
		return
	}

	if _, ok = subs[sub]; !ok {
		return
	}

	delete(subs, sub)
	close(sub.outbox)

	if len(subs) == 0 {
		delete(that.subscribers, sub.sessionID)
	}
}

// Publish implements the usecase notifier.
func (that *Hub) Publish(sessionID string, game view.Game) {
	log := that.logger.With("method", "Publish")

	msg, err := renderMessage(game)
	if err != nil {
		log.Error("failed to render game", "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subscribers[sessionID] {
		if !sub.send(msg) {
			log.Warn("subscriber is too slow, push dropped", "session", sessionID)
		}
	}
}

func (that *Hub) Count(sessionID string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.subscribers[sessionID])
}
