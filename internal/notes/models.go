package notes

import "time"

// FileRecord is the index entry of one stored document.
type FileRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"type"`
	SizeBytes  int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
	Collection string    `json:"folder"`
}

// File is a record together with its decoded content.
type File struct {
	FileRecord

	// Content holds the original bytes.
	Content []byte

	// URL is the stored data URL, directly renderable by a viewer.
	URL string
}

// PruneReport lists what Prune removed.
type PruneReport struct {
	// DroppedRecords are index entries whose content was missing.
	DroppedRecords []string
	// OrphanedContent are content keys with no index entry.
	OrphanedContent []string
}
