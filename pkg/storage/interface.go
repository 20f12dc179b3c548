package storage

import (
	"context"
	"io"
	"time"
)

// Provider abstracts blob storage for attachments and avatars.
type Provider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
	PublicURL(key string) string
}

type UploadRequest struct {
	Key         string
	Reader      io.Reader
	ContentType string
	Size        int64
}

type UploadResponse struct {
	Key  string
	URL  string
	Size int64
	ETag string
}
