package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"potensidesa/internal/config"
)

// PublicPrefix is the key prefix that anonymous clients may read.
const PublicPrefix = "locations/"

// minioStorage implements the Storage interface using an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL *url.URL
}

// NewMinIO creates a new S3-compatible storage client backed by MinIO.
// It ensures the bucket exists and grants anonymous read on PublicPrefix.
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

	base, err := PublicBaseURL(cfg)
	if err != nil {
		return nil, err
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket, baseURL: base}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	if err := cli.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket, PublicPrefix)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	return ms, nil
}

// Put uploads an object using streaming I/O only (no local disk).
func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	putOpts := minio.PutObjectOptions{
		ContentType:        opt.ContentType,
		ContentDisposition: opt.ContentDisposition,
		UserMetadata:       opt.Metadata,
	}
	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, putOpts)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  opt.ContentType,
		LastModified: time.Now(), // MinIO PutObjectInfo doesn't return LastModified
		URL:          m.PublicURL(key),
	}, nil
}

func (m *minioStorage) PublicURL(key string) string {
	return ObjectURL(m.baseURL, key)
}

func (m *minioStorage) Ping(ctx context.Context) error {
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}

// PublicBaseURL resolves the base under which objects are publicly served.
func PublicBaseURL(cfg config.MinIOConfig) (*url.URL, error) {
	raw := cfg.PublicURL
	if raw == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		raw = scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse public url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("public url must be absolute: %q", raw)
	}
	return u, nil
}

// ObjectURL joins base and key, escaping each key segment.
func ObjectURL(base *url.URL, key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return base.JoinPath(segs...).String()
}

func publicReadPolicy(bucket, prefix string) string {
	return fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/%s*"]
  }]
}`, bucket, prefix)
}
