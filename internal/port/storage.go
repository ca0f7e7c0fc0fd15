package port

import (
	"context"
	"io"
	"time"
)

// UploadInput encapsulates the parameters needed to store an object.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Metadata    map[string]string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage stores archived documents in a single bucket.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL. A non-empty filename
	// is sent back as an attachment Content-Disposition.
	PresignGet(ctx context.Context, key string, expiry time.Duration, filename string) (string, error)
}
