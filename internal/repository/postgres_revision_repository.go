package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
)

// PostgresRevisionRepository implements RevisionRepository using PostgreSQL
type PostgresRevisionRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRevisionRepository creates a new PostgreSQL revision repository
func NewPostgresRevisionRepository(db *pgxpool.Pool) *PostgresRevisionRepository {
	return &PostgresRevisionRepository{
		db: db,
	}
}

// CreateRevision inserts a revision row
func (r *PostgresRevisionRepository) CreateRevision(ctx context.Context, revision *domain.Revision) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO invoice_revisions (file_name, session_id, item_count, previous_total, new_total, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, saved_at
	`, revision.FileName, revision.SessionID, revision.ItemCount, revision.PreviousTotal,
		revision.NewTotal, revision.Payload).Scan(&revision.ID, &revision.SavedAt)
	if err != nil {
		return &RepositoryError{Op: "create_revision", Err: fmt.Errorf("failed to insert revision: %w", err)}
	}
	return nil
}

// ListRevisions returns the revisions of a file, newest first
func (r *PostgresRevisionRepository) ListRevisions(ctx context.Context, fileName string, limit int) ([]domain.Revision, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, file_name, session_id, item_count, previous_total, new_total, saved_at
		FROM invoice_revisions
		WHERE file_name = $1
		ORDER BY saved_at DESC, id DESC
		LIMIT $2
	`, fileName, limit)
	if err != nil {
		return nil, &RepositoryError{Op: "list_revisions", Err: fmt.Errorf("failed to query revisions: %w", err)}
	}
	defer rows.Close()

	revisions := []domain.Revision{}
	for rows.Next() {
		var rev domain.Revision
		if err := rows.Scan(&rev.ID, &rev.FileName, &rev.SessionID, &rev.ItemCount,
			&rev.PreviousTotal, &rev.NewTotal, &rev.SavedAt); err != nil {
			return nil, &RepositoryError{Op: "list_revisions", Err: fmt.Errorf("failed to scan revision: %w", err)}
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, &RepositoryError{Op: "list_revisions", Err: fmt.Errorf("error iterating revisions: %w", err)}
	}

	return revisions, nil
}
