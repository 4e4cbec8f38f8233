package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessions is the default single-process session store.
// States are kept encoded so callers never share memory with the store.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessions {
	return &MemorySessions{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *MemorySessions) Save(_ context.Context, sessionID string, state *entity.GameState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[sessionID] = memoryEntry{
		data:      data,
		expiresAt: that.expiry(),
	}

	return nil
}

func (that *MemorySessions) GetByID(_ context.Context, sessionID string) (*entity.GameState, error) {
	that.mu.Lock()
	entry, ok := that.sessions[sessionID]
	if ok && that.expired(entry) {
		delete(that.sessions, sessionID)
		ok = false
	}
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrSessionMissing
	}

	return decodeState(entry.data)
}

func (that *MemorySessions) DeleteByID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[sessionID]; !ok {
		return apperror.ErrSessionMissing
	}

	delete(that.sessions, sessionID)

	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (that *MemorySessions) Sweep() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for id, entry := range that.sessions {
		if that.expired(entry) {
			delete(that.sessions, id)
			removed++
		}
	}

	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (that *MemorySessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.Sweep()
		}
	}
}

func (that *MemorySessions) expiry() time.Time {
	if that.ttl <= 0 {
		return time.Time{}
	}

	return that.now().Add(that.ttl)
}

func (that *MemorySessions) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}
