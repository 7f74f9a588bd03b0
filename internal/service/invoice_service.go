package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ridwanfathin/invoice-explorer-service/internal/apiclient"
	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
	"github.com/ridwanfathin/invoice-explorer-service/internal/logger"
	"github.com/ridwanfathin/invoice-explorer-service/internal/repository"
	"go.uber.org/zap"
)

// SaveResult is the outcome of a save request
type SaveResult string

const (
	SaveResultSuccess  SaveResult = "success"
	SaveResultNoChange SaveResult = "nochange"
)

const defaultRevisionLimit = 50

// InvoiceView is the detail view of an invoice file
type InvoiceView struct {
	FileName string
	TaxMode  domain.TaxMode
	Invoice  *domain.Invoice
	Totals   engine.ItemTotals
}

// SessionView is the state of an edit session after an operation
type SessionView struct {
	Session    *engine.Session
	Totals     engine.ItemTotals
	HasChanges bool
}

// SaveOutcome describes a finished save
type SaveOutcome struct {
	Result     SaveResult
	Revision   *domain.Revision
	ArchiveKey string
}

// FileDownload is a file ready to be sent as an attachment
type FileDownload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// InvoiceService defines the invoice detail and editing operations
type InvoiceService interface {
	GetInvoice(ctx context.Context, fileName string) (*InvoiceView, error)
	StartEditing(ctx context.Context, fileName string) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	EditItemField(ctx context.Context, sessionID string, index int, field engine.Field, value string) (*SessionView, error)
	AddItem(ctx context.Context, sessionID string) (*SessionView, error)
	DeleteItem(ctx context.Context, sessionID string, index int) (*SessionView, error)
	SetOtherCharges(ctx context.Context, sessionID string, value string) (*SessionView, error)
	CancelEditing(ctx context.Context, sessionID string) error
	Save(ctx context.Context, sessionID string) (*SaveOutcome, error)
	DownloadOriginal(ctx context.Context, fileName string) (*FileDownload, error)
	ExportCurrent(ctx context.Context, fileName string) (*FileDownload, error)
	ListRevisions(ctx context.Context, fileName string) ([]domain.Revision, error)
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	api       FileAPI
	sessions  repository.SessionRepository
	revisions repository.RevisionRepository
	archive   SnapshotArchive
	locks     *sessionLocks
	now       func() time.Time
	newID     func() string
}

// NewInvoiceService creates a new InvoiceService. archive may be nil.
func NewInvoiceService(
	api FileAPI,
	sessions repository.SessionRepository,
	revisions repository.RevisionRepository,
	archive SnapshotArchive,
) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{
		api:       api,
		sessions:  sessions,
		revisions: revisions,
		archive:   archive,
		locks:     newSessionLocks(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *InvoiceServiceImpl) loadDocument(ctx context.Context, op, fileName string) (*domain.Document, error) {
	doc, err := s.api.GetDocument(ctx, fileName)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return nil, &ServiceError{Op: op, Err: fmt.Errorf("%w: %s", ErrInvoiceNotFound, fileName)}
		}
		return nil, &ServiceError{Op: op, Err: err}
	}
	if doc.Invoice() == nil {
		return nil, &ServiceError{Op: op, Err: fmt.Errorf("%w: %s", ErrInvoiceNotFound, fileName)}
	}
	return doc, nil
}

// GetInvoice loads a file and builds its detail view
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, fileName string) (*InvoiceView, error) {
	doc, err := s.loadDocument(ctx, "get_invoice", fileName)
	if err != nil {
		return nil, err
	}

	inv := doc.Invoice()
	return &InvoiceView{
		FileName: fileName,
		TaxMode:  engine.DetectTaxMode(inv),
		Invoice:  inv,
		Totals:   engine.SumItems(inv.ItemList),
	}, nil
}

func newSessionView(session *engine.Session) *SessionView {
	return &SessionView{
		Session:    session,
		Totals:     engine.SumItems(session.Invoice().ItemList),
		HasChanges: session.HasChanges(),
	}
}

// StartEditing opens an edit session on the file's current content
func (s *InvoiceServiceImpl) StartEditing(ctx context.Context, fileName string) (*SessionView, error) {
	doc, err := s.loadDocument(ctx, "start_editing", fileName)
	if err != nil {
		return nil, err
	}

	session, err := engine.StartSession(s.newID(), fileName, doc)
	if err != nil {
		return nil, &ServiceError{Op: "start_editing", Err: err}
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, &ServiceError{Op: "start_editing", Err: err}
	}

	logger.Info("Edit session started",
		zap.String("session_id", session.ID),
		zap.String("file_name", fileName),
		zap.String("tax_mode", string(session.TaxMode)))

	return newSessionView(session), nil
}

func (s *InvoiceServiceImpl) getSession(ctx context.Context, op, sessionID string) (*engine.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, &ServiceError{Op: op, Err: fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)}
		}
		return nil, &ServiceError{Op: op, Err: err}
	}
	return session, nil
}

// mutate runs fn on the stored session under the session's lock and stores
// the result
func (s *InvoiceServiceImpl) mutate(ctx context.Context, op, sessionID string, fn func(*engine.Session) error) (*SessionView, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.getSession(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		return nil, &ServiceError{Op: op, Err: err}
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, &ServiceError{Op: op, Err: err}
	}
	return newSessionView(session), nil
}

// GetSession returns the current state of an edit session
func (s *InvoiceServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.getSession(ctx, "get_session", sessionID)
	if err != nil {
		return nil, err
	}
	return newSessionView(session), nil
}

// EditItemField applies a single field edit to an item
func (s *InvoiceServiceImpl) EditItemField(ctx context.Context, sessionID string, index int, field engine.Field, value string) (*SessionView, error) {
	return s.mutate(ctx, "edit_item_field", sessionID, func(session *engine.Session) error {
		return session.ApplyFieldEdit(index, field, value)
	})
}

// AddItem appends a default item
func (s *InvoiceServiceImpl) AddItem(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.mutate(ctx, "add_item", sessionID, func(session *engine.Session) error {
		session.AddItem()
		return nil
	})
}

// DeleteItem removes an item and renumbers the rest
func (s *InvoiceServiceImpl) DeleteItem(ctx context.Context, sessionID string, index int) (*SessionView, error) {
	return s.mutate(ctx, "delete_item", sessionID, func(session *engine.Session) error {
		return session.DeleteItem(index)
	})
}

// SetOtherCharges overrides the automatic other charges
func (s *InvoiceServiceImpl) SetOtherCharges(ctx context.Context, sessionID string, value string) (*SessionView, error) {
	return s.mutate(ctx, "set_other_charges", sessionID, func(session *engine.Session) error {
		session.SetOtherCharges(value)
		return nil
	})
}

// CancelEditing discards an edit session
func (s *InvoiceServiceImpl) CancelEditing(ctx context.Context, sessionID string) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if _, err := s.getSession(ctx, "cancel_editing", sessionID); err != nil {
		return err
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return &ServiceError{Op: "cancel_editing", Err: err}
	}

	logger.Info("Edit session cancelled", zap.String("session_id", sessionID))
	return nil
}

// Save submits the working copy to the backend. Without changes the session
// is closed and the backend is not called. A failed submission leaves the
// session open.
func (s *InvoiceServiceImpl) Save(ctx context.Context, sessionID string) (*SaveOutcome, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.getSession(ctx, "save", sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasChanges() {
		if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
			return nil, &ServiceError{Op: "save", Err: err}
		}
		logger.Info("No changes to save", zap.String("session_id", sessionID))
		return &SaveOutcome{Result: SaveResultNoChange}, nil
	}

	payload := session.Payload()
	if err := s.api.UpdateItems(ctx, session.FileName, payload); err != nil {
		logger.Error("Failed to save invoice changes",
			zap.String("session_id", sessionID),
			zap.String("file_name", session.FileName),
			zap.Error(err))
		return nil, &ServiceError{Op: "save", Err: err}
	}

	var previousTotal float64
	if inv := session.Original.Invoice(); inv != nil && inv.ValDtls != nil {
		previousTotal = inv.ValDtls.TotInvVal
	}

	if err := session.Commit(); err != nil {
		return nil, &ServiceError{Op: "save", Err: err}
	}

	outcome := &SaveOutcome{Result: SaveResultSuccess}
	outcome.Revision = s.recordRevision(ctx, session, payload, previousTotal)
	outcome.ArchiveKey = s.archiveDocument(ctx, session)

	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		logger.Warn("Failed to close saved session", zap.String("session_id", sessionID), zap.Error(err))
	}

	logger.Info("Invoice changes saved",
		zap.String("session_id", sessionID),
		zap.String("file_name", session.FileName),
		zap.Int("items", len(payload.ItemList)))

	return outcome, nil
}

// recordRevision journals a committed save. Failures are logged only since
// the backend already holds the new content.
func (s *InvoiceServiceImpl) recordRevision(ctx context.Context, session *engine.Session, payload domain.ItemUpdate, previousTotal float64) *domain.Revision {
	if s.revisions == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("Failed to encode revision payload", zap.Error(err))
		return nil
	}

	var newTotal float64
	if payload.ValDtls != nil {
		newTotal = payload.ValDtls.TotInvVal
	}

	revision := &domain.Revision{
		FileName:      session.FileName,
		SessionID:     session.ID,
		ItemCount:     len(payload.ItemList),
		PreviousTotal: previousTotal,
		NewTotal:      newTotal,
		Payload:       data,
		SavedAt:       s.now().UTC(),
	}
	if err := s.revisions.CreateRevision(ctx, revision); err != nil {
		logger.Warn("Failed to record revision", zap.String("file_name", session.FileName), zap.Error(err))
		return nil
	}
	return revision
}

func (s *InvoiceServiceImpl) archiveDocument(ctx context.Context, session *engine.Session) string {
	if s.archive == nil {
		return ""
	}

	data, err := json.MarshalIndent(session.Working, "", "  ")
	if err != nil {
		logger.Warn("Failed to encode document for archive", zap.Error(err))
		return ""
	}

	key, err := s.archive.ArchiveDocument(ctx, session.FileName, data)
	if err != nil {
		logger.Warn("Failed to archive document", zap.String("file_name", session.FileName), zap.Error(err))
		return ""
	}
	return key
}

// DownloadOriginal fetches the stored bytes of a file
func (s *InvoiceServiceImpl) DownloadOriginal(ctx context.Context, fileName string) (*FileDownload, error) {
	data, contentType, err := s.api.DownloadFile(ctx, fileName)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return nil, &ServiceError{Op: "download_original", Err: fmt.Errorf("%w: %s", ErrInvoiceNotFound, fileName)}
		}
		return nil, &ServiceError{Op: "download_original", Err: err}
	}

	return &FileDownload{
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// ExportFileName names an exported copy of a file
func ExportFileName(fileName string, at time.Time) string {
	base := fileName
	if ext := ".json"; len(base) >= len(ext) && strings.EqualFold(base[len(base)-len(ext):], ext) {
		base = base[:len(base)-len(ext)]
	}
	return fmt.Sprintf("%s_edited_%s.json", base, at.Format("2006-01-02"))
}

// ExportCurrent returns the file's current content as indented JSON
func (s *InvoiceServiceImpl) ExportCurrent(ctx context.Context, fileName string) (*FileDownload, error) {
	doc, err := s.loadDocument(ctx, "export_current", fileName)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &ServiceError{Op: "export_current", Err: err}
	}

	return &FileDownload{
		FileName:    ExportFileName(fileName, s.now()),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// ListRevisions returns the save history of a file, newest first
func (s *InvoiceServiceImpl) ListRevisions(ctx context.Context, fileName string) ([]domain.Revision, error) {
	if s.revisions == nil {
		return []domain.Revision{}, nil
	}

	revisions, err := s.revisions.ListRevisions(ctx, fileName, defaultRevisionLimit)
	if err != nil {
		return nil, &ServiceError{Op: "list_revisions", Err: err}
	}
	return revisions, nil
}
