package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const sessionKeyPrefix = "session:"

// SessionRepository keeps one game per browser session until the TTL lapses.
type SessionRepository interface {
	Save(ctx context.Context, sessionID string, state *entity.GameState) error
	GetByID(ctx context.Context, sessionID string) (*entity.GameState, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

type redisSession struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSession{
		client: client,
		ttl:    ttl,
	}
}

func (that *redisSession) Save(ctx context.Context, sessionID string, state *entity.GameState) error {
	stateJSON, err := encodeState(state)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, sessionKeyPrefix+sessionID, stateJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *redisSession) GetByID(ctx context.Context, sessionID string) (*entity.GameState, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionMissing
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return decodeState(response)
}

func (that *redisSession) DeleteByID(ctx context.Context, sessionID string) error {
	deleted, err := that.client.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSessionMissing
	}

	return nil
}

func encodeState(state *entity.GameState) ([]byte, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game state: %w", err)
	}

	return stateJSON, nil
}

// decodeState rejects stored states that break the game invariants.
func decodeState(data []byte) (*entity.GameState, error) {
	var state entity.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal game state: %w", apperror.ErrCorruptedState, err)
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return &state, nil
}
