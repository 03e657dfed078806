package domain

import (
	"time"

	"github.com/google/uuid"
)

// Image is metadata for one uploaded file; the binary lives on disk.
type Image struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Filepath   string    `json:"filepath"`
	UploadedAt time.Time `json:"uploaded_at"`
}
