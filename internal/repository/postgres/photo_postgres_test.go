package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPhotoPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPhotoPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()

	t.Run("with description", func(t *testing.T) {
		desc := "a cat"
		rows := sqlmock.NewRows([]string{"id", "filename", "title", "description", "upload_time"}).
			AddRow(1, "uuid.png", "Cat", desc, now)

		mock.ExpectQuery("INSERT INTO photos").
			WithArgs("uuid.png", "Cat", &desc).
			WillReturnRows(rows)

		photo, err := repo.Create(ctx, "uuid.png", "Cat", &desc)

		assert.NoError(t, err)
		assert.Equal(t, 1, photo.ID)
		assert.Equal(t, "uuid.png", photo.Filename)
		assert.Equal(t, "Cat", photo.Title)
		assert.NotNil(t, photo.Description)
		assert.Equal(t, "a cat", *photo.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without description", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "filename", "title", "description", "upload_time"}).
			AddRow(2, "uuid.jpg", "Dog", nil, now)

		mock.ExpectQuery("INSERT INTO photos").
			WithArgs("uuid.jpg", "Dog", nil).
			WillReturnRows(rows)

		photo, err := repo.Create(ctx, "uuid.jpg", "Dog", nil)

		assert.NoError(t, err)
		assert.Equal(t, 2, photo.ID)
		assert.Nil(t, photo.Description)
	})

	t.Run("insert failure", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO photos").
			WithArgs("uuid.jpg", "Dog", nil).
			WillReturnError(errors.New("connection reset"))

		photo, err := repo.Create(ctx, "uuid.jpg", "Dog", nil)

		assert.Error(t, err)
		assert.Nil(t, photo)
	})
}

func TestPhotoPostgres_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPhotoPostgres(db)
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		newer := time.Now().UTC()
		older := newer.Add(-time.Hour)
		rows := sqlmock.NewRows([]string{"id", "filename", "title", "description", "upload_time"}).
			AddRow(2, "b.png", "B", nil, newer).
			AddRow(1, "a.png", "A", "first", older)

		mock.ExpectQuery("SELECT (.+) FROM photos ORDER BY upload_time DESC").
			WillReturnRows(rows)

		photos, err := repo.ListAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, photos, 2)
		assert.Equal(t, 2, photos[0].ID)
		assert.Equal(t, 1, photos[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "filename", "title", "description", "upload_time"})

		mock.ExpectQuery("SELECT (.+) FROM photos ORDER BY upload_time DESC").
			WillReturnRows(rows)

		photos, err := repo.ListAll(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, photos)
		assert.Len(t, photos, 0)
	})

	t.Run("query failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM photos ORDER BY upload_time DESC").
			WillReturnError(errors.New("connection refused"))

		photos, err := repo.ListAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, photos)
	})
}

func TestPhotoPostgres_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPhotoPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT filename FROM photos WHERE id = ?").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"filename"}).AddRow("uuid.png"))
		mock.ExpectExec("DELETE FROM photos WHERE id = ?").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		filename, err := repo.DeleteByID(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, "uuid.png", filename)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT filename FROM photos WHERE id = ?").
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		filename, err := repo.DeleteByID(ctx, 99)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Empty(t, filename)
	})

	t.Run("delete statement failure after lookup", func(t *testing.T) {
		mock.ExpectQuery("SELECT filename FROM photos WHERE id = ?").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"filename"}).AddRow("uuid.png"))
		mock.ExpectExec("DELETE FROM photos WHERE id = ?").
			WithArgs(1).
			WillReturnError(errors.New("deadlock detected"))

		filename, err := repo.DeleteByID(ctx, 1)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, sql.ErrNoRows)
		assert.Empty(t, filename)
	})
}
