// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"

	"photogallery/internal/model"
)

// PhotoRepository defines data access for photos using SQL queries only.
// No business logic here, strictly persistence operations.
type PhotoRepository interface {
	// Create inserts a new photo row. The id and upload_time are assigned by
	// the database; the stored record is returned in full.
	Create(ctx context.Context, filename, title string, description *string) (*model.Photo, error)

	// ListAll returns every photo ordered by upload_time descending (newest first).
	ListAll(ctx context.Context) ([]model.Photo, error)

	// DeleteByID removes the row with the given id and returns the filename
	// that was stored, so the caller can remove the backing file.
	// Returns sql.ErrNoRows when no row exists for id.
	DeleteByID(ctx context.Context, id int) (string, error)
}
