package storage

import (
	"context"
	"fmt"

	"github.com/pdfdesk/service/internal/config"
)

// Open builds the Store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverVercel:
		return NewVercelStore(VercelConfig{
			APIURL:     cfg.BlobAPIURL,
			Token:      cfg.BlobToken,
			Timeout:    cfg.StoreTimeout,
			PublicBase: cfg.BlobBaseURL,
		}), nil
	case config.DriverMinio:
		s, err := NewMinioStore(ctx, MinioConfig{
			Endpoint:   cfg.StorageEndpoint,
			AccessKey:  cfg.StorageAccessKey,
			SecretKey:  cfg.StorageSecretKey,
			Bucket:     cfg.StorageBucket,
			Region:     cfg.StorageRegion,
			UseSSL:     cfg.StorageUseSSL,
			PublicBase: cfg.StoragePublicBase,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		base := cfg.BlobBaseURL
		if base == "" {
			base = "http://localhost:" + cfg.Port + "/blobs"
		}
		return NewMemoryStore(base), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
