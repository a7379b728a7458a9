package storage

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdfdesk/service/internal/blob"
)

const (
	vercelAPIVersion  = "7"
	vercelListLimit   = 1000
	vercelCacheMaxAge = 31536000 // one year
	vercelPublicHost  = "public.blob.vercel-storage.com"
)

// VercelConfig holds the settings for the Vercel Blob REST API.
type VercelConfig struct {
	// APIURL is the API root, e.g. "https://blob.vercel-storage.com".
	APIURL string
	// Token is the read-write token used as a Bearer credential.
	Token string
	// Timeout bounds each HTTP round trip. Zero means 30 seconds.
	Timeout time.Duration
	// PublicBase overrides the public URL root derived from the token's store id.
	PublicBase string
}

// VercelStore implements Store against the Vercel Blob REST API.
type VercelStore struct {
	apiURL     string
	token      string
	publicBase string
	httpClient *http.Client
	now        func() time.Time
}

// NewVercelStore creates a VercelStore. A missing token is not an error here;
// every call fails with blob.ErrUnauthorized before touching the network.
func NewVercelStore(cfg VercelConfig) *VercelStore {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &VercelStore{
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		token:      cfg.Token,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type vercelPutResponse struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

type vercelListResponse struct {
	Blobs []struct {
		URL         string    `json:"url"`
		Pathname    string    `json:"pathname"`
		Size        int64     `json:"size"`
		ContentType string    `json:"contentType"`
		UploadedAt  time.Time `json:"uploadedAt"`
	} `json:"blobs"`
	Cursor  string `json:"cursor"`
	HasMore bool   `json:"hasMore"`
}

// Put uploads data with public access, overwriting any existing blob at key.
func (s *VercelStore) Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}

	u := s.apiURL + "/?pathname=" + url.QueryEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("vercel: create request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("x-content-type", contentType)
	req.Header.Set("x-add-random-suffix", "0")
	req.Header.Set("x-allow-overwrite", "1")
	req.Header.Set("x-cache-control-max-age", strconv.Itoa(vercelCacheMaxAge))

	var out vercelPutResponse
	if err := s.do(req, "put "+key, &out); err != nil {
		return nil, err
	}

	obj := &Object{
		Key:         key,
		URL:         out.URL,
		Size:        int64(len(data)),
		ContentType: contentType,
		UploadedAt:  time.Now().UTC(),
	}
	if out.Pathname != "" {
		obj.Key = out.Pathname
	}
	if out.ContentType != "" {
		obj.ContentType = out.ContentType
	}
	return obj, nil
}

// List pages through every blob in the store.
func (s *VercelStore) List(ctx context.Context) ([]Object, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}

	var objects []Object
	cursor := ""
	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(vercelListLimit))
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/?"+q.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("vercel: create request: %w", err)
		}
		s.setHeaders(req)

		var page vercelListResponse
		if err := s.do(req, "list", &page); err != nil {
			return nil, err
		}

		for _, b := range page.Blobs {
			objects = append(objects, Object{
				Key:         b.Pathname,
				URL:         b.URL,
				Size:        b.Size,
				ContentType: b.ContentType,
				UploadedAt:  b.UploadedAt,
			})
		}

		if !page.HasMore || page.Cursor == "" {
			return objects, nil
		}
		cursor = page.Cursor
	}
}

// Delete removes the blob at key. The API accepts either a pathname or a full URL.
func (s *VercelStore) Delete(ctx context.Context, key string) error {
	if err := s.checkToken(); err != nil {
		return err
	}

	body, err := json.Marshal(map[string][]string{"urls": {key}})
	if err != nil {
		return fmt.Errorf("vercel: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/delete", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("vercel: create request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	return s.do(req, "delete "+key, nil)
}

// clientTokenPayload is the signed part of a client upload token.
type clientTokenPayload struct {
	Pathname        string `json:"pathname"`
	ValidUntil      int64  `json:"validUntil"`
	AddRandomSuffix bool   `json:"addRandomSuffix"`
	AllowOverwrite  bool   `json:"allowOverwrite"`
}

// PresignPut issues a client upload token scoped to key. The browser PUTs the
// bytes to the returned URL with the token as its Bearer credential. No
// request is made to the store here.
func (s *VercelStore) PresignPut(_ context.Context, key string, expiry time.Duration) (*UploadGrant, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}

	storeID := s.storeID()
	if storeID == "" {
		return nil, fmt.Errorf("vercel: token carries no store id: %w", blob.ErrUnauthorized)
	}

	validUntil := s.now().Add(expiry)
	payload, err := json.Marshal(clientTokenPayload{
		Pathname:       key,
		ValidUntil:     validUntil.UnixMilli(),
		AllowOverwrite: true,
	})
	if err != nil {
		return nil, fmt.Errorf("vercel: marshal token payload: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(payload)

	mac := hmac.New(sha256.New, []byte(s.token))
	mac.Write([]byte(encoded))
	signature := hex.EncodeToString(mac.Sum(nil))

	return &UploadGrant{
		UploadURL: s.apiURL + "/?pathname=" + url.QueryEscape(key),
		URL:       s.PublicURL(key),
		Token:     "vercel_blob_client_" + storeID + "_" + base64.StdEncoding.EncodeToString([]byte(signature+"."+encoded)),
		ExpiresAt: validUntil.UTC(),
	}, nil
}

// PublicURL returns the browser-accessible URL for key.
func (s *VercelStore) PublicURL(key string) string {
	base := s.publicBase
	if base == "" {
		base = "https://" + strings.ToLower(s.storeID()) + "." + vercelPublicHost
	}
	return base + "/" + url.PathEscape(key)
}

// storeID extracts the store id from a "vercel_blob_rw_<storeId>_<secret>" token.
func (s *VercelStore) storeID() string {
	parts := strings.Split(s.token, "_")
	if len(parts) < 5 {
		return ""
	}
	return parts[3]
}

func (s *VercelStore) checkToken() error {
	if s.token == "" {
		return fmt.Errorf("vercel: BLOB_READ_WRITE_TOKEN not set: %w", blob.ErrUnauthorized)
	}
	return nil
}

func (s *VercelStore) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("x-api-version", vercelAPIVersion)
}

// do executes req and decodes a JSON body into out when out is non-nil.
// Status codes are mapped onto the blob error taxonomy.
func (s *VercelStore) do(req *http.Request, what string, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("vercel: %s: %w", what, err)
		}
		return fmt.Errorf("vercel: %s: %w: %v", what, blob.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("vercel: %s: %w", what, blob.ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("vercel: %s (status %d): %w: %w", what, resp.StatusCode, blob.ErrStoreUnavailable, blob.ErrUnauthorized)
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("vercel: %s failed (status %d): %w: %s", what, resp.StatusCode, blob.ErrStoreUnavailable, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("vercel: %s: decode response: %w: %v", what, blob.ErrStoreUnavailable, err)
	}
	return nil
}
