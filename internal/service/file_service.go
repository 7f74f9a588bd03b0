package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	minFabricatedSize   = 1000
	fabricatedSizeRange = 1000000
)

// FileService defines the file listing and upload operations
type FileService interface {
	ListFiles(ctx context.Context, filter domain.FileFilter) (*domain.FileListing, error)
	UploadFile(ctx context.Context, fileName string, content io.Reader) (string, error)
}

// FileServiceImpl implements the FileService interface
type FileServiceImpl struct {
	api      FileAPI
	sizeFunc func(name string) int64
	now      func() time.Time
}

// FileServiceOption customizes a FileServiceImpl
type FileServiceOption func(*FileServiceImpl)

// WithSizeFunc replaces the size fabricated for each listed file
func WithSizeFunc(fn func(name string) int64) FileServiceOption {
	return func(s *FileServiceImpl) {
		s.sizeFunc = fn
	}
}

// WithClock replaces the clock used for modification times
func WithClock(now func() time.Time) FileServiceOption {
	return func(s *FileServiceImpl) {
		s.now = now
	}
}

// NewFileService creates a new FileService
func NewFileService(api FileAPI, opts ...FileServiceOption) *FileServiceImpl {
	s := &FileServiceImpl{
		api: api,
		sizeFunc: func(string) int64 {
			return minFabricatedSize + rand.Int63n(fabricatedSizeRange)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileType returns the lower-cased text after the last dot of the name
func FileType(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return strings.ToLower(name)
	}
	return strings.ToLower(name[idx+1:])
}

// ListFiles fetches the file names and applies the search, type filter and sort
func (s *FileServiceImpl) ListFiles(ctx context.Context, filter domain.FileFilter) (*domain.FileListing, error) {
	names, err := s.api.ListFiles(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "list_files", Err: err}
	}

	modified := s.now()
	entries := make([]domain.FileEntry, 0, len(names))
	categories := []string{domain.CategoryAll}
	seen := map[string]bool{}
	for _, name := range names {
		entry := domain.FileEntry{
			Name:     name,
			Size:     s.sizeFunc(name),
			Modified: modified,
			Type:     FileType(name),
		}
		entries = append(entries, entry)
		if !seen[entry.Type] {
			seen[entry.Type] = true
			categories = append(categories, entry.Type)
		}
	}

	filtered := filterFiles(entries, filter)
	sortFiles(filtered, filter.SortBy)

	return &domain.FileListing{
		Files:      filtered,
		Categories: categories,
		Total:      len(entries),
	}, nil
}

func filterFiles(entries []domain.FileEntry, filter domain.FileFilter) []domain.FileEntry {
	search := strings.ToLower(filter.Search)
	category := filter.Category
	if category == "" {
		category = domain.CategoryAll
	}

	result := make([]domain.FileEntry, 0, len(entries))
	for _, entry := range entries {
		if search != "" && !strings.Contains(strings.ToLower(entry.Name), search) {
			continue
		}
		if category != domain.CategoryAll && entry.Type != category {
			continue
		}
		result = append(result, entry)
	}
	return result
}

func sortFiles(entries []domain.FileEntry, by domain.SortField) {
	switch by {
	case domain.SortByType:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Type < entries[j].Type
		})
	case domain.SortBySize:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Size > entries[j].Size
		})
	default:
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(entries, func(i, j int) bool {
			return col.CompareString(entries[i].Name, entries[j].Name) < 0
		})
	}
}

// FormatFileSize renders a byte count as Bytes, KB, MB or GB
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	units := []string{"Bytes", "KB", "MB", "GB"}
	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}

	formatted := fmt.Sprintf("%.2f", value)
	formatted = strings.TrimRight(strings.TrimRight(formatted, "0"), ".")
	return formatted + " " + units[i]
}

// UploadFile validates the name and forwards the file to the backend. It
// returns the detail path of the uploaded file.
func (s *FileServiceImpl) UploadFile(ctx context.Context, fileName string, content io.Reader) (string, error) {
	if !strings.HasSuffix(strings.ToLower(fileName), ".json") {
		return "", ErrNotJSONFile
	}

	if err := s.api.UploadFile(ctx, fileName, content); err != nil {
		return "", &ServiceError{Op: "upload_file", Err: err}
	}

	return "/file/" + url.PathEscape(fileName), nil
}
