package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/session"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

type gameUseCase interface {
	View(ctx context.Context, sessionID string) (view.Game, error)
	Move(ctx context.Context, sessionID string, cell int) (view.Game, error)
	JumpTo(ctx context.Context, sessionID string, step int) (view.Game, error)
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func newHandlers(logger *slog.Logger, game gameUseCase) *handlers {
	return &handlers{
		logger: logger,
		game:   game,
	}
}

func (that *handlers) page(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "page")

	game, err := that.game.View(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		log.Error("failed to load game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = view.WritePage(w, game); err != nil {
		log.Error("failed to write page", "error", err)
	}
}

func (that *handlers) state(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "state")

	game, err := that.game.View(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		log.Error("failed to load game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(game); err != nil {
		log.Error("failed to encode game", "error", err)
	}
}

// move is the form fallback for a cell click; rejected moves still redirect back to the board.
func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	that.act(w, r, "cell", that.game.Move)
}

func (that *handlers) jump(w http.ResponseWriter, r *http.Request) {
	that.act(w, r, "step", that.game.JumpTo)
}

func (that *handlers) act(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	do func(ctx context.Context, sessionID string, index int) (view.Game, error),
) {
	log := that.logger.With("method", "act", "param", param)

	index, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		http.Error(w, "invalid "+param, http.StatusBadRequest)
		return
	}

	if _, err = do(r.Context(), session.FromContext(r.Context()), index); err != nil {
		log.Error("failed to apply action", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
