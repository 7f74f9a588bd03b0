package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
)

// ErrSessionNotFound is returned when a session does not exist or has expired
var ErrSessionNotFound = errors.New("session not found")

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// SessionRepository defines the storage operations for edit sessions
type SessionRepository interface {
	// GetSession loads a session by ID. Expired sessions are not returned.
	GetSession(ctx context.Context, sessionID string) (*engine.Session, error)

	// SaveSession stores the session and refreshes its expiry
	SaveSession(ctx context.Context, session *engine.Session) error

	// DeleteSession removes a session. Deleting a missing session is not an error.
	DeleteSession(ctx context.Context, sessionID string) error
}
