// Package storage defines the interface for blob object storage.
// Swap implementations by changing the concrete type injected at startup:
// Vercel Blob (the default), any S3-compatible provider through MinIO, or an
// in-process store for development and tests.
package storage

import (
	"context"
	"time"
)

// Object describes a stored blob.
type Object struct {
	Key         string
	URL         string
	Size        int64
	ContentType string
	UploadedAt  time.Time
}

// Store is the minimal capability set the handlers rely on.
type Store interface {
	// Put stores data under key, replacing any existing object. The object is publicly readable.
	Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error)
	// List returns every stored object in no particular order.
	List(ctx context.Context) ([]Object, error)
	// Delete removes the object at key. It returns blob.ErrNotFound when key is absent.
	Delete(ctx context.Context, key string) error
}

// UploadGrant lets a browser upload one object directly to the store.
type UploadGrant struct {
	// UploadURL receives the PUT.
	UploadURL string
	// URL is where the object is readable once uploaded.
	URL string
	// Token goes in the Authorization header as a Bearer credential. Empty
	// when UploadURL is self-authenticating.
	Token string
	// ExpiresAt bounds the grant.
	ExpiresAt time.Time
}

// Presigner is optionally implemented by stores that can hand out a URL the
// browser uploads to directly.
type Presigner interface {
	PresignPut(ctx context.Context, key string, expiry time.Duration) (*UploadGrant, error)
}
