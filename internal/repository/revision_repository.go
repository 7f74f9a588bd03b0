package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
)

// RevisionRepository records every successful save of an invoice file
type RevisionRepository interface {
	// CreateRevision stores a revision and fills in its ID and SavedAt
	CreateRevision(ctx context.Context, revision *domain.Revision) error

	// ListRevisions returns the revisions of a file, newest first
	ListRevisions(ctx context.Context, fileName string, limit int) ([]domain.Revision, error)
}

// MemoryRevisionRepository keeps revisions in process memory
type MemoryRevisionRepository struct {
	revisions map[string][]domain.Revision
	mutex     sync.RWMutex
}

// NewMemoryRevisionRepository creates an in-memory revision repository
func NewMemoryRevisionRepository() *MemoryRevisionRepository {
	return &MemoryRevisionRepository{
		revisions: make(map[string][]domain.Revision),
	}
}

// CreateRevision stores a revision
func (r *MemoryRevisionRepository) CreateRevision(ctx context.Context, revision *domain.Revision) error {
	if err := ctx.Err(); err != nil {
		return &RepositoryError{Op: "create_revision", Err: err}
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	revision.ID = uuid.NewString()
	if revision.SavedAt.IsZero() {
		revision.SavedAt = time.Now().UTC()
	}
	r.revisions[revision.FileName] = append(r.revisions[revision.FileName], *revision)
	return nil
}

// ListRevisions returns the revisions of a file, newest first
func (r *MemoryRevisionRepository) ListRevisions(ctx context.Context, fileName string, limit int) ([]domain.Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RepositoryError{Op: "list_revisions", Err: err}
	}

	r.mutex.RLock()
	stored := r.revisions[fileName]
	result := make([]domain.Revision, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		result = append(result, stored[i])
	}
	r.mutex.RUnlock()

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
