package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/pdfdesk/service/internal/blob"
)

// MinioConfig holds the settings for an S3-compatible bucket.
type MinioConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	Region     string
	UseSSL     bool
	PublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/pdfs"
}

// MinioStore implements Store using a MinIO (or any S3-compatible) backend.
type MinioStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinioStore creates a MinIO client, ensures the bucket exists with a public-read
// policy, and returns a ready-to-use MinioStore.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio: access key not set: %w", blob.ErrUnauthorized)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", mapMinioError(err))
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, mapMinioError(err))
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("storage: created bucket")
	}

	if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", mapMinioError(err))
	}

	return &MinioStore{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

// Put uploads data under key. S3 semantics make this an overwrite.
func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000",
	})
	if err != nil {
		return nil, fmt.Errorf("put object %q: %w", key, mapMinioError(err))
	}

	uploadedAt := info.LastModified
	if uploadedAt.IsZero() {
		uploadedAt = time.Now().UTC()
	}
	return &Object{
		Key:         key,
		URL:         s.PublicURL(key),
		Size:        int64(len(data)),
		ContentType: contentType,
		UploadedAt:  uploadedAt,
	}, nil
}

// List walks the whole bucket.
func (s *MinioStore) List(ctx context.Context) ([]Object, error) {
	// Cancelling stops the listing goroutine when we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var objects []Object
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list objects: %w", mapMinioError(info.Err))
		}
		objects = append(objects, Object{
			Key:         info.Key,
			URL:         s.PublicURL(info.Key),
			Size:        info.Size,
			ContentType: info.ContentType,
			UploadedAt:  info.LastModified,
		})
	}
	return objects, nil
}

// Delete removes the object at key. S3 deletes are silent for missing keys,
// so existence is checked first to report blob.ErrNotFound.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return fmt.Errorf("stat object %q: %w", key, mapMinioError(err))
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", key, mapMinioError(err))
	}
	return nil
}

// PresignPut returns a time-limited URL the browser can PUT the object to.
func (s *MinioStore) PresignPut(ctx context.Context, key string, expiry time.Duration) (*UploadGrant, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
	if err != nil {
		return nil, fmt.Errorf("presign %q: %w", key, mapMinioError(err))
	}
	return &UploadGrant{
		UploadURL: u.String(),
		URL:       s.PublicURL(key),
		ExpiresAt: time.Now().Add(expiry).UTC(),
	}, nil
}

// PublicURL returns the browser-accessible URL for the given key.
func (s *MinioStore) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

func mapMinioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey":
		return fmt.Errorf("%w: %v", blob.ErrNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %w: %v", blob.ErrStoreUnavailable, blob.ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: %v", blob.ErrStoreUnavailable, err)
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
