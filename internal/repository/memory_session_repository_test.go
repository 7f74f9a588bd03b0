package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, id string) *engine.Session {
	t.Helper()
	doc := &domain.Document{Data: []domain.Invoice{{
		ItemList: []domain.LineItem{{SlNo: "1", PrdDesc: "Rice", Qty: 10, UnitPrice: 100, AssAmt: 1000, IgstAmt: 50, TotItemVal: 1050}},
		ValDtls:  &domain.ValueDetails{AssVal: 1000, IgstVal: 50, TotInvVal: 1050},
	}}}
	session, err := engine.StartSession(id, "a.json", doc)
	require.NoError(t, err)
	return session
}

func TestMemorySessionRepository_SaveAndGet(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	session := newTestSession(t, "s1")
	require.NoError(t, repo.SaveSession(ctx, session))

	loaded, err := repo.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a.json", loaded.FileName)
	assert.Equal(t, domain.TaxAmounts{Igst: 50}, loaded.TaxSnapshot["1"])
	assert.False(t, loaded.HasChanges())
}

func TestMemorySessionRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	session := newTestSession(t, "s1")
	require.NoError(t, repo.SaveSession(ctx, session))

	require.NoError(t, session.ApplyFieldEdit(0, engine.FieldQuantity, "5"))

	loaded, err := repo.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, loaded.Invoice().ItemList[0].Qty)
}

func TestMemorySessionRepository_NotFound(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)

	_, err := repo.GetSession(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	var repoErr *RepositoryError
	require.True(t, errors.As(err, &repoErr))
	assert.Equal(t, "get_session", repoErr.Op)
}

func TestMemorySessionRepository_Expiry(t *testing.T) {
	repo := NewMemorySessionRepository(time.Minute)
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, newTestSession(t, "s1")))

	now = now.Add(30 * time.Second)
	_, err := repo.GetSession(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = repo.GetSession(ctx, "s1")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestMemorySessionRepository_SaveRefreshesExpiry(t *testing.T) {
	repo := NewMemorySessionRepository(time.Minute)
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	session := newTestSession(t, "s1")
	require.NoError(t, repo.SaveSession(ctx, session))

	now = now.Add(50 * time.Second)
	require.NoError(t, repo.SaveSession(ctx, session))

	now = now.Add(50 * time.Second)
	_, err := repo.GetSession(ctx, "s1")
	assert.NoError(t, err)
}

func TestMemorySessionRepository_Delete(t *testing.T) {
	repo := NewMemorySessionRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, newTestSession(t, "s1")))
	require.NoError(t, repo.DeleteSession(ctx, "s1"))
	require.NoError(t, repo.DeleteSession(ctx, "s1"))

	_, err := repo.GetSession(ctx, "s1")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestMemorySessionRepository_CanceledContext(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.SaveSession(ctx, newTestSession(t, "s1"))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMemoryRevisionRepository(t *testing.T) {
	repo := NewMemoryRevisionRepository()
	ctx := context.Background()

	first := &domain.Revision{FileName: "a.json", NewTotal: 100}
	second := &domain.Revision{FileName: "a.json", NewTotal: 200}
	other := &domain.Revision{FileName: "b.json", NewTotal: 300}
	require.NoError(t, repo.CreateRevision(ctx, first))
	require.NoError(t, repo.CreateRevision(ctx, second))
	require.NoError(t, repo.CreateRevision(ctx, other))

	assert.NotEmpty(t, first.ID)
	assert.False(t, first.SavedAt.IsZero())

	revisions, err := repo.ListRevisions(ctx, "a.json", 0)
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	assert.Equal(t, 200.0, revisions[0].NewTotal)
	assert.Equal(t, 100.0, revisions[1].NewTotal)

	limited, err := repo.ListRevisions(ctx, "a.json", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)

	none, err := repo.ListRevisions(ctx, "c.json", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
