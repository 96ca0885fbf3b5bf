// Package storage keeps uploaded files in a blob store: a local
// directory or an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studynotes/internal/filex"
	"github.com/dmitrijs2005/studynotes/internal/server/config"
	"github.com/google/uuid"
)

// BlobStore persists opaque objects under caller-chosen keys.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// NewKey returns a unique storage key for an uploaded file.
func NewKey(filename string) string {
	return fmt.Sprintf("%s-%s", uuid.NewString(), filex.SafeFilename(filename))
}

// New builds the store selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.StorageBackend {
	case "", config.StorageLocal:
		return NewLocalStore(cfg.UploadDir)
	case config.StorageS3:
		return NewS3Store(ctx, S3Options{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Bucket:       cfg.S3Bucket,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
