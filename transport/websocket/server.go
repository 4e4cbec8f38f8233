package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/session"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

const writeTimeout = 3 * time.Second

type gameUseCase interface {
	Observe(ctx context.Context, sessionID string, fn func(view.Game)) error
	Dispatch(ctx context.Context, sessionID string, action view.Action) (view.Game, error)
}

type Server struct {
	logger *slog.Logger
	game   gameUseCase
	hub    *Hub
}

func New(logger *slog.Logger, game gameUseCase, hub *Hub) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		hub:    hub,
	}
}

// ServeHTTP upgrades the request and serves the session found in the request context.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID := session.FromContext(r.Context())
	if sessionID == "" {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	// subscribe before the first render so a move from another tab is never missed
	sub := that.hub.Subscribe(sessionID)
	defer that.hub.Unsubscribe(sub)

	var renderErr error
	err := that.game.Observe(r.Context(), sessionID, func(game view.Game) {
		var initial Message
		if initial, renderErr = renderMessage(game); renderErr == nil {
			sub.send(initial)
		}
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		log.Error("failed to load game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go that.writeLoop(ctx, cancel, conn, sub)

	log.Info("WebSocket connection established", "session", sessionID)

	if err = that.readLoop(ctx, conn, sessionID, sub); err != nil {
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			conn.Close(websocket.StatusNormalClosure, "")
		default:
			if !errors.Is(err, context.Canceled) {
				log.Error("error handling messages", "error", err)
			}
		}
	}
}

// writeLoop is the only writer of conn.
func (that *Server) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, sub *Subscription) {
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.C():
			if !ok {
				return
			}

			writeCtx, writeCancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, msg)
			writeCancel()

			if err != nil {
				that.logger.Debug("failed to write message", "error", err)
				return
			}
		}
	}
}

func (that *Server) readLoop(ctx context.Context, conn *websocket.Conn, sessionID string, sub *Subscription) error {
	log := that.logger.With("method", "readLoop", "session", sessionID)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		action, err := decodeAction(data)
		if err != nil {
			log.Debug("bad client message", "error", err)
			sub.send(errorMessage("bad json"))
			continue
		}

		if _, err = that.game.Dispatch(ctx, sessionID, action); err != nil {
			if errors.Is(err, view.ErrUnknownAction) {
				sub.send(errorMessage("unknown action"))
				continue
			}

			log.Error("failed to dispatch action", "error", err)
			sub.send(errorMessage("internal error"))
		}
	}
}
