package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/rest"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, closeSessions, err := newSessionRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeSessions()

	hub := websocket.NewHub(logger)
	gameUseCase := usecase.NewGameUseCase(logger, sessions, hub)
	wsServer := websocket.New(logger, gameUseCase, hub)
	router := rest.NewRouter(logger, gameUseCase, wsServer, conf.SessionTTL)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "session-store", conf.SessionStore)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newSessionRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	log := logger.With("component", "app")

	if conf.SessionStore == config.SessionStoreMemory {
		sessions := repository.NewMemorySessionRepository(conf.SessionTTL)
		if conf.SessionTTL > 0 {
			go sessions.Run(ctx, conf.SessionTTL)
		}

		return sessions, func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewRedisSessionRepository(redisStorage.Connection, conf.SessionTTL), closeFn, nil
}
