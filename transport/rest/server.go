package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/session"
)

const shutdownTimeout = 5 * time.Second

// NewRouter mounts the game pages, the form fallbacks, the JSON state and the websocket endpoint.
func NewRouter(logger *slog.Logger, game gameUseCase, ws http.Handler, sessionTTL time.Duration) http.Handler {
	h := newHandlers(logger.With("component", "rest"), game)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(logger, sessionTTL))

		r.Get("/", h.page)
		r.Get("/api/state", h.state)
		r.Post("/move/{cell}", h.move)
		r.Post("/jump/{step}", h.jump)
		r.Handle("/ws", ws)
	})

	return r
}

// Start serves handler on port until ctx is canceled, then shuts down gracefully.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}
