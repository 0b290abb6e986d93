// Package uploads accepts admin image uploads and stores them through one of
// three drivers: inline data URIs, a local directory, or an S3 bucket.
package uploads

import (
	"context"
	"errors"
)

// DefaultMaxBytes is the largest accepted image.
const DefaultMaxBytes = 5 << 20

var (
	ErrNoFile        = errors.New("No file uploaded")
	ErrTooLarge      = errors.New("File size exceeds 5MB limit")
	ErrInvalidType   = errors.New("Invalid file type. Only images are allowed")
	ErrInvalidExt    = errors.New("Invalid file extension")
	ErrStoreFailed   = errors.New("Failed to save uploaded file")
	allowedTypes     = map[string]bool{"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true}
	allowedExtension = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true}
)

// Store persists an accepted image and returns the URL projects should
// reference.
type Store interface {
	Driver() string
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type Result struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int    `json:"size"`
	ContentType string `json:"content_type"`
}
