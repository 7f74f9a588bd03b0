package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
)

type memorySessionEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process memory. Sessions are
// stored encoded so callers never share state with the store.
type MemorySessionRepository struct {
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySessionEntry
	mutex    sync.RWMutex
}

// NewMemorySessionRepository creates an in-memory session repository. A
// non-positive ttl keeps sessions until they are deleted.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySessionEntry),
	}
}

// GetSession loads a session by ID
func (r *MemorySessionRepository) GetSession(ctx context.Context, sessionID string) (*engine.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RepositoryError{Op: "get_session", Err: err}
	}

	r.mutex.RLock()
	entry, ok := r.sessions[sessionID]
	r.mutex.RUnlock()

	if !ok {
		return nil, &RepositoryError{Op: "get_session", Err: ErrSessionNotFound}
	}
	if r.expired(entry) {
		r.mutex.Lock()
		delete(r.sessions, sessionID)
		r.mutex.Unlock()
		return nil, &RepositoryError{Op: "get_session", Err: ErrSessionNotFound}
	}

	var session engine.Session
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, &RepositoryError{Op: "get_session", Err: err}
	}
	return &session, nil
}

// SaveSession stores the session and refreshes its expiry
func (r *MemorySessionRepository) SaveSession(ctx context.Context, session *engine.Session) error {
	if err := ctx.Err(); err != nil {
		return &RepositoryError{Op: "save_session", Err: err}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return &RepositoryError{Op: "save_session", Err: err}
	}

	entry := memorySessionEntry{data: data}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.sessions[session.ID] = entry
	r.purgeExpiredLocked()
	return nil
}

// DeleteSession removes a session
func (r *MemorySessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return &RepositoryError{Op: "delete_session", Err: err}
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *MemorySessionRepository) expired(entry memorySessionEntry) bool {
	return !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt)
}

func (r *MemorySessionRepository) purgeExpiredLocked() {
	for id, entry := range r.sessions {
		if r.expired(entry) {
			delete(r.sessions, id)
		}
	}
}
