package service

import (
	"context"
	"io"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
)

// FileAPI is the remote file API the explorer is a front end for
type FileAPI interface {
	ListFiles(ctx context.Context) ([]string, error)
	UploadFile(ctx context.Context, fileName string, content io.Reader) error
	GetDocument(ctx context.Context, fileName string) (*domain.Document, error)
	DownloadFile(ctx context.Context, fileName string) ([]byte, string, error)
	UpdateItems(ctx context.Context, fileName string, update domain.ItemUpdate) error
}

// SnapshotArchive keeps copies of committed documents
type SnapshotArchive interface {
	ArchiveDocument(ctx context.Context, fileName string, data []byte) (string, error)
}
