package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryGame struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

// NewMemoryGameRepository - keeps sessions in process memory with the same
// expiry rules as the redis repository. Sessions are stored encoded so
// callers never share an engine with the store.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	entry := memoryEntry{data: sessionJSON}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.sessions[session.ID] = entry
	that.mu.Unlock()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Session, error) {
	entry, ok := that.lookup(id)
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return decodeSession(entry.data)
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	if _, ok := that.lookup(id); !ok {
		return apperror.ErrSessionNotFound
	}

	that.mu.Lock()
	delete(that.sessions, id)
	that.mu.Unlock()

	return nil
}

// lookup drops the entry when it has expired.
func (that *memoryGame) lookup(id string) (memoryEntry, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}

	if !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt) {
		delete(that.sessions, id)
		return memoryEntry{}, false
	}

	return entry, true
}
