package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

type sessionRepo interface {
	Save(ctx context.Context, sessionID string, state *entity.GameState) error
	GetByID(ctx context.Context, sessionID string) (*entity.GameState, error)
}

// notifier is told about every state change so open views can redraw.
type notifier interface {
	Publish(sessionID string, game view.Game)
}

type GameUseCase struct {
	logger   *slog.Logger
	sessions sessionRepo
	notifier notifier
	locks    *sessionLocks
}

func NewGameUseCase(logger *slog.Logger, sessions sessionRepo, notifier notifier) *GameUseCase {
	return &GameUseCase{
		logger:   logger.With("component", "usecase"),
		sessions: sessions,
		notifier: notifier,
		locks:    newSessionLocks(),
	}
}

// View returns the rendered game for the session, starting a new game if there is none.
func (that *GameUseCase) View(ctx context.Context, sessionID string) (view.Game, error) {
	var game view.Game
	if err := that.Observe(ctx, sessionID, func(g view.Game) { game = g }); err != nil {
		return view.Game{}, err
	}

	return game, nil
}

// Observe hands the current view to fn while the session is locked, so no concurrent
// action can publish between the snapshot and fn.
func (that *GameUseCase) Observe(ctx context.Context, sessionID string, fn func(view.Game)) error {
	unlock := that.locks.lock(sessionID)
	defer unlock()

	controller, err := that.load(ctx, sessionID)
	if err != nil {
		return err
	}

	fn(view.Render(controller.Snapshot()))

	return nil
}

func (that *GameUseCase) Move(ctx context.Context, sessionID string, cell int) (view.Game, error) {
	return that.Dispatch(ctx, sessionID, view.MoveAction(cell))
}

func (that *GameUseCase) JumpTo(ctx context.Context, sessionID string, step int) (view.Game, error) {
	return that.Dispatch(ctx, sessionID, view.JumpAction(step))
}

// Dispatch applies a user action to the session's game and returns the fresh view.
// Rejected moves and jumps leave the game as it was and are not reported as errors.
func (that *GameUseCase) Dispatch(ctx context.Context, sessionID string, action view.Action) (view.Game, error) {
	log := that.logger.With("method", "Dispatch", "action", action.Type, "index", action.Index)

	unlock := that.locks.lock(sessionID)
	defer unlock()

	controller, err := that.load(ctx, sessionID)
	if err != nil {
		return view.Game{}, err
	}

	if err = view.Dispatch(controller, action); err != nil {
		if apperror.IsRejected(err) {
			log.Debug("action ignored", "reason", err)
			return view.Render(controller.Snapshot()), nil
		}

		return view.Game{}, err
	}

	snapshot := controller.Snapshot()
	if err = that.sessions.Save(ctx, sessionID, snapshot); err != nil {
		return view.Game{}, fmt.Errorf("failed to save session: %w", err)
	}

	game := view.Render(snapshot)
	that.notifier.Publish(sessionID, game)

	log.Debug("action applied", "step", snapshot.StepNumber, "history", len(snapshot.History))

	return game, nil
}

func (that *GameUseCase) load(ctx context.Context, sessionID string) (*tictactoe.GameController, error) {
	state, err := that.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionMissing) {
		state = entity.NewGameState()
		if err = that.sessions.Save(ctx, sessionID, state); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}

		that.logger.Info("new game started", "session", sessionID)

		return tictactoe.NewGameController(state), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return tictactoe.NewGameController(state), nil
}
