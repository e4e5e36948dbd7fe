package handler

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"photogallery/internal/service"
	"photogallery/internal/storage"
)

// ListPhotos returns the full photo collection, newest first.
func ListPhotos(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		photos, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Database error: "+err.Error())
		}
		return c.JSON(photos)
	}
}

// UploadPhoto ingests a multipart/form-data body with fields file, title and
// description. The body is handed to the service as a stream; with
// StreamRequestBody enabled it is never buffered whole.
func UploadPhoto(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mediaType, params, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
		if err != nil || mediaType != fiber.MIMEMultipartForm || params["boundary"] == "" {
			return writeError(c, fiber.StatusBadRequest, "Content-Type must be multipart/form-data")
		}

		var body io.Reader = c.Context().RequestBodyStream()
		if body == nil {
			// Streaming disabled; the body is already in memory.
			body = bytes.NewReader(c.Body())
		}

		photo, err := svc.Upload(c.UserContext(), body, params["boundary"])
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingFileOrTitle):
				return writeError(c, fiber.StatusBadRequest, "Missing file or title")
			case errors.Is(err, service.ErrMalformedBody):
				return writeError(c, fiber.StatusBadRequest, err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(photo)
	}
}

// DeletePhoto removes the photo row for the given id and best-effort removes
// its backing file.
func DeletePhoto(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid photo id")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Photo not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "Database error: "+err.Error())
		}
		return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
	}
}

// ServeUpload streams an uploaded blob back to the client. Going through the
// Storage interface keeps the route working for both the local and the
// S3-compatible backend.
func ServeUpload(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Params("filename")

		rc, size, err := store.Open(c.UserContext(), filename)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return writeError(c, fiber.StatusNotFound, "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "failed to open file")
		}

		ct := mime.TypeByExtension(filepath.Ext(filename))
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		return c.SendStream(rc, int(size))
	}
}
