package uploads

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/internal/logging"
)

type Options struct {
	MaxBytes int64
	Logger   *zap.Logger
	Now      func() time.Time
}

// Uploader validates images and hands them to a Store.
type Uploader struct {
	store    Store
	maxBytes int64
	log      *zap.Logger
	now      func() time.Time
}

func NewUploader(store Store, opts Options) *Uploader {
	u := &Uploader{
		store:    store,
		maxBytes: opts.MaxBytes,
		log:      logging.OrNop(opts.Logger).Named("uploads"),
		now:      opts.Now,
	}
	if u.maxBytes <= 0 {
		u.maxBytes = DefaultMaxBytes
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

func (u *Uploader) MaxBytes() int64 { return u.maxBytes }

func (u *Uploader) Driver() string { return u.store.Driver() }

// Upload checks size, sniffed type and extension in that order, then stores
// data under a generated project_<unix>_<hex>.<ext> name.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrNoFile
	}
	if int64(len(data)) > u.maxBytes {
		return Result{}, ErrTooLarge
	}

	contentType := mimetype.Detect(data).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !allowedTypes[contentType] {
		return Result{}, ErrInvalidType
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedExtension[ext] {
		return Result{}, ErrInvalidExt
	}

	name, err := u.newName(ext)
	if err != nil {
		return Result{}, err
	}

	url, err := u.store.Put(ctx, name, contentType, data)
	if err != nil {
		u.log.Error("store upload failed", zap.String("driver", u.store.Driver()), zap.Error(err))
		return Result{}, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	u.log.Info("image uploaded", zap.String("name", name), zap.Int("size", len(data)), zap.String("driver", u.store.Driver()))
	return Result{URL: url, Filename: name, Size: len(data), ContentType: contentType}, nil
}

func (u *Uploader) newName(ext string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate upload name: %w", err)
	}
	return fmt.Sprintf("project_%d_%s.%s", u.now().Unix(), hex.EncodeToString(b[:]), ext), nil
}
