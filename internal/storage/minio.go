package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"photogallery/internal/config"
)

// objectPrefix keeps photo blobs namespaced inside a shared bucket.
const objectPrefix = "photos/"

// minioStorage implements Storage against an S3-compatible backend (MinIO,
// AWS S3, etc.). It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates an S3-compatible blob store backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

func (m *minioStorage) key(filename string) string {
	return objectPrefix + filename
}

// Write uploads the blob using streaming I/O only (no local disk). Size is
// unknown at this point, so the client chunks the stream as needed.
func (m *minioStorage) Write(ctx context.Context, filename string, r io.Reader) (int64, error) {
	info, err := m.client.PutObject(ctx, m.bucket, m.key(filename), r, -1, minio.PutObjectOptions{
		ContentType: mime.TypeByExtension(filepath.Ext(filename)),
	})
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

// Open downloads the blob content as a ReadCloser along with its size.
func (m *minioStorage) Open(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, m.key(filename), minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	// Stat populates the size without reading content into memory.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, fmt.Errorf("open %q: %w", filename, fs.ErrNotExist)
		}
		return nil, 0, err
	}
	return obj, st.Size, nil
}

// Remove deletes the blob. S3 treats removal of a missing key as success, so
// a stat probe keeps the contract aligned with the local backend.
func (m *minioStorage) Remove(ctx context.Context, filename string) error {
	if _, err := m.client.StatObject(ctx, m.bucket, m.key(filename), minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return fmt.Errorf("remove %q: %w", filename, fs.ErrNotExist)
		}
		return err
	}
	return m.client.RemoveObject(ctx, m.bucket, m.key(filename), minio.RemoveObjectOptions{})
}
