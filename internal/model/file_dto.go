package model

import (
	"time"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
)

// FileEntryDTO is one row of the file listing
type FileEntryDTO struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	SizeLabel string    `json:"size_label"`
	Modified  time.Time `json:"modified"`
	Type      string    `json:"type"`
}

// FileListResponse is the filtered and sorted file listing
type FileListResponse struct {
	Files      []FileEntryDTO `json:"files"`
	Categories []string       `json:"categories"`
	Total      int            `json:"total"`
	Shown      int            `json:"shown"`
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	Message  string `json:"message"`
	FileName string `json:"file_name"`
	Path     string `json:"path"`
}

// RevisionDTO is one entry of a file's save history
type RevisionDTO struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	ItemCount     int       `json:"item_count"`
	PreviousTotal float64   `json:"previous_total"`
	NewTotal      float64   `json:"new_total"`
	SavedAt       time.Time `json:"saved_at"`
}

// RevisionListResponse lists the revisions of a file
type RevisionListResponse struct {
	FileName  string        `json:"file_name"`
	Revisions []RevisionDTO `json:"revisions"`
}

// NewFileListResponse converts a listing, labelling sizes with formatSize
func NewFileListResponse(listing *domain.FileListing, formatSize func(int64) string) *FileListResponse {
	files := make([]FileEntryDTO, len(listing.Files))
	for i, f := range listing.Files {
		files[i] = FileEntryDTO{
			Name:      f.Name,
			Size:      f.Size,
			SizeLabel: formatSize(f.Size),
			Modified:  f.Modified,
			Type:      f.Type,
		}
	}
	return &FileListResponse{
		Files:      files,
		Categories: listing.Categories,
		Total:      listing.Total,
		Shown:      len(files),
	}
}

// NewRevisionListResponse converts journal entries
func NewRevisionListResponse(fileName string, revisions []domain.Revision) *RevisionListResponse {
	dtos := make([]RevisionDTO, len(revisions))
	for i, r := range revisions {
		dtos[i] = RevisionDTO{
			ID:            r.ID,
			SessionID:     r.SessionID,
			ItemCount:     r.ItemCount,
			PreviousTotal: r.PreviousTotal,
			NewTotal:      r.NewTotal,
			SavedAt:       r.SavedAt,
		}
	}
	return &RevisionListResponse{FileName: fileName, Revisions: dtos}
}
