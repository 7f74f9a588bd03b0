package handler_test

import (
	"context"
	"io"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
	"github.com/ridwanfathin/invoice-explorer-service/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockFileService implements service.FileService
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) ListFiles(ctx context.Context, filter domain.FileFilter) (*domain.FileListing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileListing), args.Error(1)
}

func (m *MockFileService) UploadFile(ctx context.Context, fileName string, content io.Reader) (string, error) {
	args := m.Called(ctx, fileName, content)
	return args.String(0), args.Error(1)
}

// MockInvoiceService implements service.InvoiceService
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) sessionView(args mock.Arguments) (*service.SessionView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, fileName string) (*service.InvoiceView, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceView), args.Error(1)
}

func (m *MockInvoiceService) StartEditing(ctx context.Context, fileName string) (*service.SessionView, error) {
	return m.sessionView(m.Called(ctx, fileName))
}

func (m *MockInvoiceService) GetSession(ctx context.Context, sessionID string) (*service.SessionView, error) {
	return m.sessionView(m.Called(ctx, sessionID))
}

func (m *MockInvoiceService) EditItemField(ctx context.Context, sessionID string, index int, field engine.Field, value string) (*service.SessionView, error) {
	return m.sessionView(m.Called(ctx, sessionID, index, field, value))
}

func (m *MockInvoiceService) AddItem(ctx context.Context, sessionID string) (*service.SessionView, error) {
	return m.sessionView(m.Called(ctx, sessionID))
}

func (m *MockInvoiceService) DeleteItem(ctx context.Context, sessionID string, index int) (*service.SessionView, error) {
	return m.sessionView(m.Called(ctx, sessionID, index))
}

func (m *MockInvoiceService) SetOtherCharges(ctx context.Context, sessionID string, value string) (*service.SessionView, error) {
	return m.sessionView(m.Called(ctx, sessionID, value))
}

func (m *MockInvoiceService) CancelEditing(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockInvoiceService) Save(ctx context.Context, sessionID string) (*service.SaveOutcome, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SaveOutcome), args.Error(1)
}

func (m *MockInvoiceService) DownloadOriginal(ctx context.Context, fileName string) (*service.FileDownload, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileDownload), args.Error(1)
}

func (m *MockInvoiceService) ExportCurrent(ctx context.Context, fileName string) (*service.FileDownload, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileDownload), args.Error(1)
}

func (m *MockInvoiceService) ListRevisions(ctx context.Context, fileName string) ([]domain.Revision, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Revision), args.Error(1)
}
