package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"unicode/utf8"

	"photogallery/internal/model"
	"photogallery/internal/repository"
	"photogallery/internal/storage"
)

var (
	// ErrMissingFileOrTitle reports a rejected upload: no file part wrote
	// successfully, the title was empty, or both.
	ErrMissingFileOrTitle = errors.New("missing file or title")
	// ErrNotFound reports that no photo exists for the given id.
	ErrNotFound = errors.New("photo not found")
	// ErrMalformedBody reports a request body that could not be parsed as
	// multipart/form-data.
	ErrMalformedBody = errors.New("malformed multipart body")
)

// fallback original name when the file part carries no filename metadata
const unnamedUpload = "unknown"

// PhotoService defines the use cases for handling photos.
type PhotoService interface {
	// Upload consumes a multipart/form-data body as a stream, persisting the
	// file part to the blob store under a generated name and the title and
	// description fields to the database. The body is read exactly once,
	// part by part.
	Upload(ctx context.Context, body io.Reader, boundary string) (*model.Photo, error)

	// List returns all photos, newest first.
	List(ctx context.Context) ([]model.Photo, error)

	// Delete removes the photo row by id, then best-effort removes its
	// backing blob.
	Delete(ctx context.Context, id int) error
}

// photoService is a concrete implementation of PhotoService.
type photoService struct {
	store storage.Storage
	repo  repository.PhotoRepository
}

// NewPhotoService constructs a new PhotoService.
func NewPhotoService(store storage.Storage, repo repository.PhotoRepository) PhotoService {
	return &photoService{store: store, repo: repo}
}

func (s *photoService) Upload(ctx context.Context, body io.Reader, boundary string) (*model.Photo, error) {
	mr := multipart.NewReader(body, boundary)

	var (
		filename    string
		title       string
		description *string
	)

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}

		switch part.FormName() {
		case "file":
			original := part.FileName()
			if original == "" {
				original = unnamedUpload
			}
			name := storage.GenerateName(original)
			if _, err := s.store.Write(ctx, name, part); err != nil {
				part.Close()
				// A partial blob may remain; see Write's contract.
				return nil, fmt.Errorf("write blob: %w", err)
			}
			filename = name
		case "title":
			title = readTextPart(part)
		case "description":
			if d := readTextPart(part); d != "" {
				description = &d
			}
		default:
			// Unknown fields are drained so stream parsing can proceed;
			// their content is discarded.
			_, _ = io.Copy(io.Discard, part)
		}
		part.Close()
	}

	if filename == "" || title == "" {
		// A blob written before validation failed stays in the store; no row
		// references it, and nothing cleans it up.
		return nil, ErrMissingFileOrTitle
	}

	photo, err := s.repo.Create(ctx, filename, title, description)
	if err != nil {
		// Compensating cleanup of the just-written blob. Best-effort: a
		// failure here is logged, never surfaced.
		if remErr := s.store.Remove(ctx, filename); remErr != nil {
			log.Printf("failed to remove blob %s after insert failure: %v", filename, remErr)
		}
		return nil, fmt.Errorf("save photo: %w", err)
	}
	return photo, nil
}

// readTextPart accumulates a text field into a UTF-8 string. Invalid byte
// sequences degrade the whole field to an empty string rather than failing
// the request.
func readTextPart(p *multipart.Part) string {
	b, err := io.ReadAll(p)
	if err != nil || !utf8.Valid(b) {
		return ""
	}
	return string(b)
}

// List returns all photos ordered newest first.
func (s *photoService) List(ctx context.Context) ([]model.Photo, error) {
	return s.repo.ListAll(ctx)
}

// Delete removes the row, then the blob. The row is the primary resource:
// once it is gone the delete has succeeded, and a blob that refuses to go
// away is only logged.
func (s *photoService) Delete(ctx context.Context, id int) error {
	filename, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.store.Remove(ctx, filename); err != nil {
		log.Printf("failed to remove blob %s for deleted photo %d: %v", filename, id, err)
	}
	return nil
}
