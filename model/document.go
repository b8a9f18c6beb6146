package model

import (
	"path/filepath"
	"strings"
	"time"
)

// FileType is the coarse classification of an uploaded file, derived from its extension.
type FileType string

const (
	FileTypePDF     FileType = "PDF"
	FileTypeWord    FileType = "WORD DOCUMENT"
	FileTypeUnknown FileType = "UNKNOWN"
)

// IdentifyFileType classifies a file by the extension of its name.
func IdentifyFileType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FileTypePDF
	case ".doc", ".docx":
		return FileTypeWord
	default:
		return FileTypeUnknown
	}
}

// Document is the catalog entry for one ingested file.
// The ID is opaque and shared with the document's page corpus and stored binary.
type Document struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Author           string     `json:"author"`
	PublishedDate    *time.Time `json:"published_date,omitempty"`
	AddedDate        time.Time  `json:"added_date"`
	Filename         string     `json:"filename"`          // Stored name, "<id>.pdf"
	OriginalFilename string     `json:"original_filename"` // Name as uploaded
	FileType         FileType   `json:"file_type"`
	NumPages         int        `json:"num_pages"`
}

// UnknownTitle is the title given to occurrences whose document is missing from the catalog.
const UnknownTitle = "Unknown"
