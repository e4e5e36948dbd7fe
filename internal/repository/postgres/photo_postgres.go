package postgres

import (
	"context"
	"database/sql"

	"photogallery/internal/model"
	"photogallery/internal/repository"
)

// PhotoPostgres is a PostgreSQL implementation of repository.PhotoRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type PhotoPostgres struct {
	db *sql.DB
}

// NewPhotoPostgres creates a new PhotoPostgres repository.
func NewPhotoPostgres(db *sql.DB) *PhotoPostgres {
	return &PhotoPostgres{db: db}
}

var _ repository.PhotoRepository = (*PhotoPostgres)(nil)

// Create inserts a new photo row and returns the stored record.
// RETURNING surfaces the database-assigned id and upload_time, so no
// read-back query is needed.
func (r *PhotoPostgres) Create(ctx context.Context, filename, title string, description *string) (*model.Photo, error) {
	const q = `
		INSERT INTO photos (filename, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, filename, title, description, upload_time
	`
	row := r.db.QueryRowContext(ctx, q, filename, title, description)
	var out model.Photo
	if err := row.Scan(
		&out.ID,
		&out.Filename,
		&out.Title,
		&out.Description,
		&out.UploadTime,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAll returns every photo, newest first. The id tiebreak keeps the order
// deterministic when two rows share an upload_time.
func (r *PhotoPostgres) ListAll(ctx context.Context) ([]model.Photo, error) {
	const q = `
		SELECT id, filename, title, description, upload_time
		FROM photos
		ORDER BY upload_time DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]model.Photo, 0)
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(
			&p.ID,
			&p.Filename,
			&p.Title,
			&p.Description,
			&p.UploadTime,
		); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

// DeleteByID looks up the row, deletes it, and returns the stored filename.
// The lookup and delete are two statements, not a transaction; two concurrent
// deletes of the same id race, and the loser sees sql.ErrNoRows at the lookup
// or a no-op delete.
func (r *PhotoPostgres) DeleteByID(ctx context.Context, id int) (string, error) {
	const qFind = `SELECT filename FROM photos WHERE id = $1`
	var filename string
	if err := r.db.QueryRowContext(ctx, qFind, id).Scan(&filename); err != nil {
		return "", err
	}

	const qDelete = `DELETE FROM photos WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, qDelete, id); err != nil {
		return "", err
	}

	return filename, nil
}
