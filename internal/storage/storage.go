package storage

import "context"

// ObjectStore saves incident images and hands out time-limited read URLs.
type ObjectStore interface {
	UploadBytes(ctx context.Context, key, contentType string, data []byte) error
	SignedURL(ctx context.Context, key string) (string, error)
}
