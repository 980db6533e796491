package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"potensidesa/internal/model"
	"potensidesa/internal/storage"
)

const (
	// MaxUploadBytes is the largest accepted image, 5 MiB.
	MaxUploadBytes int64 = 5 * 1024 * 1024
	// UploadKeyPrefix is the storage prefix of every uploaded image.
	UploadKeyPrefix = "locations/"
)

var (
	ErrFileRequired = &ValidationError{Field: "file", Message: "No file provided"}
	ErrNotAnImage   = &ValidationError{Field: "file", Message: "File must be an image"}
	ErrFileTooLarge = &ValidationError{Field: "file", Message: "File size must be less than 5MB"}
)

// UploadInput is one multipart file as declared by the client.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadService validates images and writes them to public blob storage.
type UploadService interface {
	// Upload stores the file under locations/{unixMillis}-{filename} and returns its descriptor.
	// Validation failures never reach storage.
	Upload(ctx context.Context, in UploadInput) (*model.UploadResult, error)
	// Owns reports whether url points below the public upload prefix.
	Owns(url string) bool
}

type uploadService struct {
	store    storage.Storage
	maxBytes int64
	now      func() time.Time
	log      *zap.Logger
}

// NewUploadService constructs an UploadService. A zero maxBytes uses MaxUploadBytes; a nil now uses time.Now.
func NewUploadService(store storage.Storage, maxBytes int64, now func() time.Time, log *zap.Logger) UploadService {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &uploadService{store: store, maxBytes: maxBytes, now: now, log: log}
}

// ValidateUpload applies the image rules in order: presence, declared type, size.
func ValidateUpload(in UploadInput, maxBytes int64) error {
	if in.Body == nil || in.Filename == "" {
		return ErrFileRequired
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return ErrNotAnImage
	}
	if in.Size > maxBytes {
		return ErrFileTooLarge
	}
	return nil
}

func (s *uploadService) Upload(ctx context.Context, in UploadInput) (*model.UploadResult, error) {
	if err := ValidateUpload(in, s.maxBytes); err != nil {
		return nil, err
	}

	name := baseName(in.Filename)
	key := fmt.Sprintf("%s%d-%s", UploadKeyPrefix, s.now().UnixMilli(), name)
	disposition := fmt.Sprintf("attachment; filename=%q", name)

	info, err := s.store.Put(ctx, key, in.Body, storage.PutObjectOptions{
		Size:               in.Size,
		ContentType:        in.ContentType,
		ContentDisposition: disposition,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		s.log.Error("upload_failed",
			zap.String("component", "upload"),
			zap.String("pathname", key),
			zap.Int64("size", in.Size),
			zap.Error(err),
		)
		return nil, &ProviderError{Op: "blob put", Err: err}
	}

	url := info.URL
	if url == "" {
		url = s.store.PublicURL(key)
	}
	return &model.UploadResult{
		URL:                url,
		DownloadURL:        url + "?download=1",
		Pathname:           key,
		ContentType:        in.ContentType,
		ContentDisposition: disposition,
	}, nil
}

func (s *uploadService) Owns(url string) bool {
	prefix := s.store.PublicURL(UploadKeyPrefix)
	if prefix == "" {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(url, prefix) && len(url) > len(prefix)
}

// baseName strips any client-side directory from a filename.
func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
