package service

import (
	"context"
	"io"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockFileAPI implements FileAPI
type MockFileAPI struct {
	mock.Mock
}

func (m *MockFileAPI) ListFiles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFileAPI) UploadFile(ctx context.Context, fileName string, content io.Reader) error {
	args := m.Called(ctx, fileName, content)
	return args.Error(0)
}

func (m *MockFileAPI) GetDocument(ctx context.Context, fileName string) (*domain.Document, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockFileAPI) DownloadFile(ctx context.Context, fileName string) ([]byte, string, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockFileAPI) UpdateItems(ctx context.Context, fileName string, update domain.ItemUpdate) error {
	args := m.Called(ctx, fileName, update)
	return args.Error(0)
}

// MockSnapshotArchive implements SnapshotArchive
type MockSnapshotArchive struct {
	mock.Mock
}

func (m *MockSnapshotArchive) ArchiveDocument(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}
