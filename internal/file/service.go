// Package file implements blob object management for the PDF front end:
// upload, list, update and delete of named objects in the external store.
package file

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdfdesk/service/internal/blob"
	"github.com/pdfdesk/service/internal/metrics"
	"github.com/pdfdesk/service/internal/storage"
)

const (
	defaultUploadType = "application/octet-stream"
	defaultUpdateType = "application/pdf"
	uploadURLExpiry   = 15 * time.Minute
)

// Entry is one listed object, enriched for display.
type Entry struct {
	URL           string    `json:"url"`
	Pathname      string    `json:"pathname"`
	UploadedAt    time.Time `json:"uploadedAt"`
	Size          int64     `json:"size"`
	ContentType   string    `json:"contentType"`
	OriginalName  string    `json:"originalName"`
	FormattedSize string    `json:"formattedSize"`
	FormattedDate string    `json:"formattedDate"`
}

// UploadInput carries a decoded upload.
type UploadInput struct {
	Filename    string
	Data        []byte
	ContentType string
	// AcceptKey keeps Filename as the key when it already carries a generated prefix.
	AcceptKey bool
}

// UpdateResult is the outcome of replacing an object's bytes.
type UpdateResult struct {
	URL      string
	Pathname string
	Size     int64
}

// UploadURLResult is a direct-upload grant for the browser.
// ClientToken, when set, is sent as "Authorization: Bearer" on the PUT.
type UploadURLResult struct {
	URL         string    `json:"url"`
	UploadURL   string    `json:"uploadUrl"`
	Pathname    string    `json:"pathname"`
	ClientToken string    `json:"clientToken,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Store status values reported by Info.
const (
	StatusConfigured    = "configured"
	StatusNotConfigured = "not configured"
)

// Info describes the configured store. The credential itself is never exposed.
type Info struct {
	StoreID string `json:"storeId"`
	Region  string `json:"region"`
	BaseURL string `json:"baseUrl"`
	Driver  string `json:"driver"`
	Status  string `json:"status"`
}

// Options configures a Service.
type Options struct {
	// Zone is the time zone used for formatted dates. Nil means UTC.
	Zone *time.Location
	// Keys derives storage keys. Nil means blob.DefaultKeyGenerator.
	Keys *blob.KeyGenerator
	Info Info
}

// Service contains the blob object management logic.
type Service struct {
	store storage.Store
	keys  *blob.KeyGenerator
	zone  *time.Location
	info  Info
}

// NewService creates a new file Service.
func NewService(store storage.Store, opts Options) *Service {
	s := &Service{store: store, keys: opts.Keys, zone: opts.Zone, info: opts.Info}
	if s.keys == nil {
		s.keys = blob.DefaultKeyGenerator
	}
	if s.zone == nil {
		s.zone = time.UTC
	}
	return s
}

// Upload stores a new object and returns it.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*storage.Object, error) {
	if in.Filename == "" || in.Data == nil {
		return nil, fmt.Errorf("upload: %w", blob.ErrMissingField)
	}

	key := in.Filename
	if !in.AcceptKey || !blob.IsKey(key) {
		var err error
		if key, err = s.keys.Generate(in.Filename); err != nil {
			return nil, fmt.Errorf("upload: generate key: %w", err)
		}
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = defaultUploadType
	}

	zerolog.Ctx(ctx).Debug().Str("key", key).Int("bytes", len(in.Data)).Msg("processing upload")

	timer := metrics.StoreTimer("put")
	obj, err := s.store.Put(ctx, key, in.Data, contentType)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", key, err)
	}
	return obj, nil
}

// UploadEncoded decodes a base64 or data-URL payload and uploads it. A
// filename that is already a generated key is used as-is.
func (s *Service) UploadEncoded(ctx context.Context, filename, encoded, contentType string) (*storage.Object, error) {
	if filename == "" || encoded == "" {
		return nil, fmt.Errorf("upload: %w", blob.ErrMissingField)
	}
	data, err := blob.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if contentType == "" {
		contentType = blob.MediaType(encoded)
	}
	return s.Upload(ctx, UploadInput{
		Filename:    filename,
		Data:        data,
		ContentType: contentType,
		AcceptKey:   true,
	})
}

// List returns every stored object, newest first.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	timer := metrics.StoreTimer("list")
	objects, err := s.store.List(ctx)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	entries := make([]Entry, 0, len(objects))
	for _, o := range objects {
		contentType := o.ContentType
		if contentType == "" {
			contentType = "unknown"
		}
		entries = append(entries, Entry{
			URL:           o.URL,
			Pathname:      o.Key,
			UploadedAt:    o.UploadedAt,
			Size:          o.Size,
			ContentType:   contentType,
			OriginalName:  blob.OriginalName(o.Key),
			FormattedSize: blob.FormatFileSize(o.Size),
			FormattedDate: blob.FormatDate(o.UploadedAt, s.zone),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UploadedAt.After(entries[j].UploadedAt)
	})

	zerolog.Ctx(ctx).Debug().Int("count", len(entries)).Msg("listed files")
	return entries, nil
}

// Update replaces the bytes stored at key by deleting and re-putting it.
// The payload is decoded before the store is touched. A failed delete is
// logged and ignored; the object is briefly absent between the two calls.
func (s *Service) Update(ctx context.Context, key, encoded, contentType string) (*UpdateResult, error) {
	if key == "" || encoded == "" {
		return nil, fmt.Errorf("update: %w", blob.ErrMissingField)
	}
	data, err := blob.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	if contentType == "" {
		contentType = defaultUpdateType
	}

	logger := zerolog.Ctx(ctx).With().Str("key", key).Logger()
	logger.Debug().Int("bytes", len(data)).Msg("updating object")

	timer := metrics.StoreTimer("delete")
	err = s.store.Delete(ctx, key)
	timer.Done(err)
	if err != nil {
		logger.Info().Err(err).Msg("no existing object to delete or delete failed, continuing")
	} else {
		logger.Debug().Msg("old object deleted")
	}

	timer = metrics.StoreTimer("put")
	obj, err := s.store.Put(ctx, key, data, contentType)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("update %q: %w", key, err)
	}

	return &UpdateResult{URL: obj.URL, Pathname: key, Size: int64(len(data))}, nil
}

// Delete removes key. existed is false when the store reported the key absent;
// that case is not an error.
func (s *Service) Delete(ctx context.Context, key string) (existed bool, err error) {
	if key == "" {
		return false, fmt.Errorf("delete: %w", blob.ErrMissingField)
	}

	timer := metrics.StoreTimer("delete")
	err = s.store.Delete(ctx, key)
	timer.Done(err)
	if errors.Is(err, blob.ErrNotFound) {
		zerolog.Ctx(ctx).Info().Str("key", key).Msg("delete of absent object")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete %q: %w", key, err)
	}
	return true, nil
}

// UploadURL reserves a generated key and returns a URL the browser can upload
// to directly. Stores without presign support return blob.ErrUnsupported.
func (s *Service) UploadURL(ctx context.Context, filename string) (*UploadURLResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("upload url: %w", blob.ErrMissingField)
	}
	p, ok := s.store.(storage.Presigner)
	if !ok {
		return nil, fmt.Errorf("upload url: %w", blob.ErrUnsupported)
	}

	key, err := s.keys.Generate(filename)
	if err != nil {
		return nil, fmt.Errorf("upload url: generate key: %w", err)
	}

	timer := metrics.StoreTimer("presign")
	grant, err := p.PresignPut(ctx, key, uploadURLExpiry)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("upload url %q: %w", key, err)
	}
	return &UploadURLResult{
		URL:         grant.URL,
		UploadURL:   grant.UploadURL,
		Pathname:    key,
		ClientToken: grant.Token,
		ExpiresAt:   grant.ExpiresAt,
	}, nil
}

// Info returns the configured store description.
func (s *Service) Info() Info {
	return s.info
}

// TokenPresent reports whether the store credential is configured.
func (s *Service) TokenPresent() bool {
	return s.info.Status == StatusConfigured
}
