package domain

import "time"

// FileEntry is a file name from the backend annotated for the listing view.
// Size and Modified are fabricated on the client side; the backend only
// reports names.
type FileEntry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Type     string    `json:"type"`
}

// SortField selects the ordering of the listing view
type SortField string

const (
	SortByName SortField = "name"
	SortByType SortField = "type"
	SortBySize SortField = "size"
)

// CategoryAll disables the type filter
const CategoryAll = "all"

// FileFilter represents the search, filter and sort state of the listing view
type FileFilter struct {
	Search   string
	Category string
	SortBy   SortField
}

// FileListing is the filtered view of the backend's files
type FileListing struct {
	Files      []FileEntry `json:"files"`
	Categories []string    `json:"categories"`
	Total      int         `json:"total"`
}

// Revision is one committed save recorded in the revision journal
type Revision struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	SessionID     string    `json:"session_id"`
	ItemCount     int       `json:"item_count"`
	PreviousTotal float64   `json:"previous_total"`
	NewTotal      float64   `json:"new_total"`
	Payload       []byte    `json:"-"`
	SavedAt       time.Time `json:"saved_at"`
}
