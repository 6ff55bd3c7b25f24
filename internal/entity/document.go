package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type Document struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	FileURL     string    `json:"fileUrl"`
	FileType    string    `json:"fileType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadedFile is the reference returned by the ingest pipeline, to be carried
// into a subsequent document create call.
type UploadedFile struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
}
