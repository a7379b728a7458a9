package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("DISPLAY_TIMEZONE", "")
	t.Setenv("STORE_TIMEOUT", "")

	cfg := Load()

	if cfg.StoreDriver != DriverVercel {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, DriverVercel)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.DisplayZone != time.UTC {
		t.Errorf("DisplayZone = %v, want UTC", cfg.DisplayZone)
	}
	if cfg.StoreTimeout != 30*time.Second {
		t.Errorf("StoreTimeout = %v", cfg.StoreTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverMinio)
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("STORE_TIMEOUT", "5s")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("BLOB_READ_WRITE_TOKEN", "vercel_blob_rw_x")

	cfg := Load()

	if cfg.StoreDriver != DriverMinio || cfg.MaxUploadBytes != 2048 || cfg.StoreTimeout != 5*time.Second || !cfg.StorageUseSSL {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.BlobToken != "vercel_blob_rw_x" {
		t.Errorf("BlobToken = %q", cfg.BlobToken)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	t.Setenv("STORE_TIMEOUT", "soon")

	cfg := Load()

	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.MaxUploadBytes)
	}
	if cfg.StoreTimeout != 30*time.Second {
		t.Errorf("StoreTimeout = %v, want default", cfg.StoreTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"vercel ok", Config{StoreDriver: DriverVercel, BlobAPIURL: "https://blob.example"}, ""},
		{"vercel without token is still valid", Config{StoreDriver: DriverVercel, BlobAPIURL: "x"}, ""},
		{"minio missing bucket", Config{StoreDriver: DriverMinio, StorageEndpoint: "e", StorageAccessKey: "a", StorageSecretKey: "s"}, "STORAGE_BUCKET"},
		{"memory", Config{StoreDriver: DriverMemory}, ""},
		{"unknown driver", Config{StoreDriver: "ftp"}, "unknown STORE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestTokenPresent(t *testing.T) {
	if (&Config{StoreDriver: DriverVercel}).TokenPresent() {
		t.Error("vercel without token reported present")
	}
	if !(&Config{StoreDriver: DriverVercel, BlobToken: "t"}).TokenPresent() {
		t.Error("vercel with token reported absent")
	}
}

func TestLoadDefersNotices(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = saved })

	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	t.Setenv("STORE_TIMEOUT", "soon")
	t.Setenv("DISPLAY_TIMEZONE", "Mars/Olympus")

	cfg := Load()

	if buf.Len() != 0 {
		t.Errorf("Load wrote to the global logger: %s", buf.String())
	}
	if cfg.EnvFileLoaded {
		t.Error("EnvFileLoaded = true, but the package directory has no .env")
	}
	if len(cfg.Warnings) != 3 {
		t.Fatalf("warnings = %q, want 3", cfg.Warnings)
	}
	for i, key := range []string{"STORE_TIMEOUT", "MAX_UPLOAD_BYTES", "DISPLAY_TIMEZONE"} {
		if !strings.HasPrefix(cfg.Warnings[i], key+"=") {
			t.Errorf("warnings[%d] = %q, want %s first", i, cfg.Warnings[i], key)
		}
	}
}
