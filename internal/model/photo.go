package model

import "time"

// Photo represents an uploaded image and its metadata.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Photo struct {
	ID          int       `json:"id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	UploadTime  time.Time `json:"upload_time"`
}
