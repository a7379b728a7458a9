package file_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pdfdesk/service/internal/blob"
	"github.com/pdfdesk/service/internal/file"
	"github.com/pdfdesk/service/internal/metrics"
	"github.com/pdfdesk/service/internal/storage"
)

var reportKey = regexp.MustCompile(`^\d{13}-[a-z0-9]{13}-report\.pdf$`)

// countingStore wraps a MemoryStore and records every call made to it.
type countingStore struct {
	*storage.MemoryStore
	puts, lists, deletes int
	putErr, deleteErr    error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: storage.NewMemoryStore("https://blob.test")}
}

func (s *countingStore) Put(ctx context.Context, key string, data []byte, contentType string) (*storage.Object, error) {
	s.puts++
	if s.putErr != nil {
		return nil, s.putErr
	}
	return s.MemoryStore.Put(ctx, key, data, contentType)
}

func (s *countingStore) List(ctx context.Context) ([]storage.Object, error) {
	s.lists++
	return s.MemoryStore.List(ctx)
}

func (s *countingStore) Delete(ctx context.Context, key string) error {
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.MemoryStore.Delete(ctx, key)
}

func TestUploadGeneratesKey(t *testing.T) {
	store := newCountingStore()
	svc := file.NewService(store, file.Options{})

	obj, err := svc.UploadEncoded(context.Background(), "report.pdf", "data:application/pdf;base64,"+blob.Encode([]byte("%PDF-1.7")), "")
	if err != nil {
		t.Fatalf("UploadEncoded: %v", err)
	}
	if !reportKey.MatchString(obj.Key) {
		t.Errorf("key = %q, want generated prefix + report.pdf", obj.Key)
	}
	if obj.ContentType != "application/pdf" {
		t.Errorf("content type = %q, want type from data URL", obj.ContentType)
	}
	if obj.URL != "https://blob.test/"+obj.Key {
		t.Errorf("url = %q", obj.URL)
	}

	got, ok := store.Get(obj.Key)
	if !ok || string(got) != "%PDF-1.7" {
		t.Errorf("stored bytes = %q, %v", got, ok)
	}

	entries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].OriginalName != "report.pdf" {
		t.Fatalf("entries = %+v, want one report.pdf", entries)
	}
	if entries[0].FormattedSize != "8 Bytes" {
		t.Errorf("formatted size = %q, want 8 Bytes", entries[0].FormattedSize)
	}
}

func TestUploadRecordsStoreMetrics(t *testing.T) {
	putOK := metrics.StoreOps.WithLabelValues("put", "ok")
	before := testutil.ToFloat64(putOK)

	svc := file.NewService(newCountingStore(), file.Options{})
	if _, err := svc.Upload(context.Background(), file.UploadInput{Filename: "report.pdf", Data: []byte("x")}); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if got := testutil.ToFloat64(putOK) - before; got != 1 {
		t.Errorf("put/ok increments = %v, want 1", got)
	}
}

func TestUploadKeepsGeneratedKey(t *testing.T) {
	svc := file.NewService(newCountingStore(), file.Options{})
	key := "1717171717171-abc9aabc9aabc-report.pdf"

	obj, err := svc.UploadEncoded(context.Background(), key, blob.Encode([]byte("x")), "")
	if err != nil {
		t.Fatalf("UploadEncoded: %v", err)
	}
	if obj.Key != key {
		t.Errorf("key = %q, want %q", obj.Key, key)
	}
	if obj.ContentType != "application/octet-stream" {
		t.Errorf("content type = %q, want default", obj.ContentType)
	}
}

func TestUploadRawAlwaysGeneratesKey(t *testing.T) {
	svc := file.NewService(newCountingStore(), file.Options{})
	key := "1717171717171-abc9aabc9aabc-report.pdf"

	obj, err := svc.Upload(context.Background(), file.UploadInput{Filename: key, Data: []byte("x")})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if obj.Key == key {
		t.Error("raw upload reused the supplied key")
	}
}

func TestUploadInvalidPayloadSkipsStore(t *testing.T) {
	store := newCountingStore()
	svc := file.NewService(store, file.Options{})

	_, err := svc.UploadEncoded(context.Background(), "report.pdf", "not base64!!", "")
	if !errors.Is(err, blob.ErrInvalidPayload) {
		t.Fatalf("err = %v, want ErrInvalidPayload", err)
	}
	if store.puts != 0 {
		t.Errorf("store called %d times, want 0", store.puts)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newCountingStore()
	svc := file.NewService(store, file.Options{})
	ctx := context.Background()

	base := time.Date(2024, 5, 31, 16, 8, 37, 0, time.UTC)
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		at := base.Add(time.Duration(i) * time.Minute)
		store.SetClock(func() time.Time { return at })
		if _, err := svc.Upload(ctx, file.UploadInput{Filename: name, Data: []byte(name)}); err != nil {
			t.Fatalf("Upload %s: %v", name, err)
		}
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"c.pdf", "b.pdf", "a.pdf"}
	for i, e := range entries {
		if e.OriginalName != want[i] {
			t.Errorf("entries[%d] = %s, want %s", i, e.OriginalName, want[i])
		}
	}
	if entries[2].FormattedDate != "2024/5/31 16:08:37" {
		t.Errorf("formatted date = %q", entries[2].FormattedDate)
	}
}

func TestListDisplayZone(t *testing.T) {
	store := newCountingStore()
	store.SetClock(func() time.Time { return time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC) })
	zone := time.FixedZone("UTC+2", 2*60*60)
	svc := file.NewService(store, file.Options{Zone: zone})

	if _, err := svc.Upload(context.Background(), file.UploadInput{Filename: "a.pdf", Data: []byte("a")}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	entries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries[0].FormattedDate != "2024/1/1 02:30:00" {
		t.Errorf("formatted date = %q", entries[0].FormattedDate)
	}
}

func TestUpdateReplacesBytes(t *testing.T) {
	store := newCountingStore()
	svc := file.NewService(store, file.Options{})
	ctx := context.Background()

	obj, err := svc.Upload(ctx, file.UploadInput{Filename: "report.pdf", Data: []byte("old")})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	res, err := svc.Update(ctx, obj.Key, blob.Encode([]byte("newer")), "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.Pathname != obj.Key || res.Size != 5 {
		t.Errorf("result = %+v", res)
	}
	got, _ := store.Get(obj.Key)
	if string(got) != "newer" {
		t.Errorf("stored = %q, want newer", got)
	}

	entries, _ := svc.List(ctx)
	if len(entries) != 1 || entries[0].ContentType != "application/pdf" {
		t.Errorf("entries = %+v, want one application/pdf object", entries)
	}
}

func TestUpdateMissingObjectStillWrites(t *testing.T) {
	store := newCountingStore()
	svc := file.NewService(store, file.Options{})

	if _, err := svc.Update(context.Background(), "1717171717171-abc9aabc9aabc-ghost.pdf", blob.Encode([]byte("x")), ""); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.deletes != 1 || store.puts != 1 {
		t.Errorf("deletes=%d puts=%d, want 1 and 1", store.deletes, store.puts)
	}
}

func TestUpdateIgnoresDeleteFailure(t *testing.T) {
	store := newCountingStore()
	store.deleteErr = blob.ErrStoreUnavailable
	svc := file.NewService(store, file.Options{})

	if _, err := svc.Update(context.Background(), "k.pdf", blob.Encode([]byte("x")), ""); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.puts != 1 {
		t.Errorf("puts = %d, want 1", store.puts)
	}
}

func TestUpdateInvalidPayloadSkipsStore(t *testing.T) {
	store := newCountingStore()
	svc := file.NewService(store, file.Options{})

	_, err := svc.Update(context.Background(), "k.pdf", "%%%", "")
	if !errors.Is(err, blob.ErrInvalidPayload) {
		t.Fatalf("err = %v, want ErrInvalidPayload", err)
	}
	if store.deletes != 0 || store.puts != 0 {
		t.Errorf("store touched: deletes=%d puts=%d", store.deletes, store.puts)
	}
}

func TestUpdatePutFailure(t *testing.T) {
	store := newCountingStore()
	store.putErr = blob.ErrStoreUnavailable
	svc := file.NewService(store, file.Options{})

	_, err := svc.Update(context.Background(), "k.pdf", blob.Encode([]byte("x")), "")
	if !errors.Is(err, blob.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store := newCountingStore()
	svc := file.NewService(store, file.Options{})
	ctx := context.Background()

	obj, err := svc.Upload(ctx, file.UploadInput{Filename: "report.pdf", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	existed, err := svc.Delete(ctx, obj.Key)
	if err != nil || !existed {
		t.Fatalf("first delete = %v, %v; want true, nil", existed, err)
	}
	existed, err = svc.Delete(ctx, obj.Key)
	if err != nil || existed {
		t.Fatalf("second delete = %v, %v; want false, nil", existed, err)
	}
}

func TestMissingFields(t *testing.T) {
	svc := file.NewService(newCountingStore(), file.Options{})
	ctx := context.Background()

	_, uploadErr := svc.UploadEncoded(ctx, "", "eA==", "")
	_, updateErr := svc.Update(ctx, "k.pdf", "", "")
	_, deleteErr := svc.Delete(ctx, "")
	_, urlErr := svc.UploadURL(ctx, "")

	for name, err := range map[string]error{"upload": uploadErr, "update": updateErr, "delete": deleteErr, "upload-url": urlErr} {
		if !errors.Is(err, blob.ErrMissingField) {
			t.Errorf("%s: err = %v, want ErrMissingField", name, err)
		}
	}
}

func TestUploadURLUnsupported(t *testing.T) {
	svc := file.NewService(newCountingStore(), file.Options{})

	_, err := svc.UploadURL(context.Background(), "report.pdf")
	if !errors.Is(err, blob.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

type presignStore struct {
	*storage.MemoryStore
}

func (presignStore) PresignPut(_ context.Context, key string, expiry time.Duration) (*storage.UploadGrant, error) {
	return &storage.UploadGrant{
		UploadURL: "https://upload.test/" + key + "?sig=1",
		URL:       "https://blob.test/" + key,
		Token:     "client-token",
		ExpiresAt: time.Date(2024, 5, 31, 16, 0, 0, 0, time.UTC).Add(expiry),
	}, nil
}

func TestUploadURL(t *testing.T) {
	svc := file.NewService(presignStore{storage.NewMemoryStore("https://blob.test")}, file.Options{})

	res, err := svc.UploadURL(context.Background(), "report.pdf")
	if err != nil {
		t.Fatalf("UploadURL: %v", err)
	}
	if !reportKey.MatchString(res.Pathname) {
		t.Errorf("pathname = %q", res.Pathname)
	}
	if res.URL != "https://blob.test/"+res.Pathname || res.UploadURL == "" {
		t.Errorf("result = %+v", res)
	}
	if res.ClientToken != "client-token" || res.ExpiresAt.IsZero() {
		t.Errorf("grant not carried through: %+v", res)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{blob.ErrMissingField, http.StatusBadRequest},
		{blob.ErrInvalidPayload, http.StatusBadRequest},
		{blob.ErrUnsupported, http.StatusNotImplemented},
		{blob.ErrUnauthorized, http.StatusInternalServerError},
		{blob.ErrStoreUnavailable, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := file.StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
