package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pdfdesk/service/internal/blob"
)

// MemoryStore is a concurrency-safe in-process Store. Objects vanish with the process.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	now     func() time.Time
}

type memoryObject struct {
	Object
	data []byte
}

// NewMemoryStore creates an empty MemoryStore whose URLs are rooted at baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Put stores a copy of data under key.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) (*Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := Object{
		Key:         key,
		URL:         s.baseURL + "/" + key,
		Size:        int64(len(data)),
		ContentType: contentType,
		UploadedAt:  s.now(),
	}
	s.objects[key] = memoryObject{Object: obj, data: append([]byte(nil), data...)}

	return &obj, nil
}

// List returns a snapshot of all objects.
func (s *MemoryStore) List(_ context.Context) ([]Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Object, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, o.Object)
	}
	return out, nil
}

// Delete removes key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return fmt.Errorf("delete %q: %w", key, blob.ErrNotFound)
	}
	delete(s.objects, key)
	return nil
}

// Get returns the stored bytes for key.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), o.data...), true
}

// SetClock replaces the time source used to stamp UploadedAt.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}
