package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/satvik2131/lamars-truck-backend/internal/model"
)

var allKeys = []string{
	"PORT", "UPLOAD_VARIANT", "MULTIPART_MAX_MEMORY",
	"METADATA_STORE", "MONGODB_URI", "MONGODB_DATABASE", "MONGODB_COLLECTION",
	"MARIADB_DSN", "MARIADB_MAX_OPEN_CONN", "MARIADB_MAX_IDLE_CONNS", "MARIADB_CONN_MAX_LIFETIME",
	"MEDIA_STORE", "MEDIA_FOLDER", "CLOUD_NAME", "API_KEY", "API_SECRET",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
	"S3_REGION", "S3_BUCKET",
	"REDIS_ADDR", "REDIS_PASSWORD", "LIST_CACHE_TTL", "ORPHAN_CLEANUP",
}

// isolate switches to a temp directory to avoid loading a real .env and
// blanks every known key; empty variables count as unset.
func isolate(t *testing.T) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func setAll(t *testing.T, env map[string]string) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	setAll(t, map[string]string{
		"MONGODB_URI": "mongodb://localhost:27017/trucks",
		"CLOUD_NAME":  "demo",
		"API_KEY":     "key",
		"API_SECRET":  "secret",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort: expected %d, got %d", 3000, cfg.ServerPort)
	}
	if cfg.Variant != model.LayoutSingle {
		t.Errorf("Variant: expected %q, got %q", model.LayoutSingle, cfg.Variant)
	}
	if cfg.MetadataStore != MetadataStoreMongo {
		t.Errorf("MetadataStore: expected %q, got %q", MetadataStoreMongo, cfg.MetadataStore)
	}
	if cfg.MongoURI != "mongodb://localhost:27017/trucks" {
		t.Errorf("MongoURI: got %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "test" || cfg.MongoCollection != "datas" {
		t.Errorf("Mongo db/collection: got %q/%q", cfg.MongoDatabase, cfg.MongoCollection)
	}
	if cfg.MediaStore != MediaStoreCloudinary {
		t.Errorf("MediaStore: expected %q, got %q", MediaStoreCloudinary, cfg.MediaStore)
	}
	if cfg.MediaFolder != "uploads" {
		t.Errorf("MediaFolder: expected %q, got %q", "uploads", cfg.MediaFolder)
	}
	if cfg.CloudName != "demo" || cfg.CloudAPIKey != "key" || cfg.CloudAPISecret != "secret" {
		t.Errorf("cloud credentials not loaded: %+v", cfg)
	}
	if cfg.MultipartMaxMemory != 32<<20 {
		t.Errorf("MultipartMaxMemory: got %d", cfg.MultipartMaxMemory)
	}
	if cfg.ListCacheTTL != time.Minute {
		t.Errorf("ListCacheTTL: expected %v, got %v", time.Minute, cfg.ListCacheTTL)
	}
	if cfg.OrphanCleanup {
		t.Error("OrphanCleanup should default to false")
	}
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	setAll(t, map[string]string{
		"PORT":                      "8080",
		"UPLOAD_VARIANT":            "multi",
		"METADATA_STORE":            "mariadb",
		"MARIADB_DSN":               "user:pass@tcp(localhost:3306)/db",
		"MARIADB_MAX_OPEN_CONN":     "20",
		"MARIADB_CONN_MAX_LIFETIME": "30",
		"MEDIA_STORE":               "minio",
		"MINIO_ENDPOINT":            "localhost:9000",
		"MINIO_ACCESS_KEY":          "minio",
		"MINIO_SECRET_KEY":          "minio123",
		"MINIO_BUCKET":              "trucks",
		"MINIO_USE_SSL":             "true",
		"REDIS_ADDR":                "localhost:6379",
		"ORPHAN_CLEANUP":            "true",
		"LIST_CACHE_TTL":            "5",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort: expected %d, got %d", 8080, cfg.ServerPort)
	}
	if cfg.Variant != model.LayoutMulti {
		t.Errorf("Variant: expected %q, got %q", model.LayoutMulti, cfg.Variant)
	}
	if cfg.MariaDBDSN != "user:pass@tcp(localhost:3306)/db" {
		t.Errorf("MariaDBDSN: got %q", cfg.MariaDBDSN)
	}
	if cfg.MaxOpenConns != 20 || cfg.MaxIdleConns != 5 {
		t.Errorf("pool sizes: got %d/%d", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 30*time.Second {
		t.Errorf("ConnMaxLifetime: expected %v, got %v", 30*time.Second, cfg.ConnMaxLifetime)
	}
	if cfg.MinioEndpoint != "localhost:9000" || cfg.MinioBucket != "trucks" || !cfg.MinioUseSSL {
		t.Errorf("minio settings not loaded: %+v", cfg)
	}
	if !cfg.OrphanCleanup || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("cleanup settings not loaded: %+v", cfg)
	}
	if cfg.ListCacheTTL != 5*time.Second {
		t.Errorf("ListCacheTTL: got %v", cfg.ListCacheTTL)
	}
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	base := map[string]string{
		"MONGODB_URI": "mongodb://localhost:27017",
		"CLOUD_NAME":  "demo",
		"API_KEY":     "key",
		"API_SECRET":  "secret",
	}
	cases := []struct {
		name    string
		extra   map[string]string
		missing string
		wantErr string
	}{
		{name: "mongo uri", missing: "MONGODB_URI", wantErr: "MONGODB_URI is required"},
		{name: "cloud name", missing: "CLOUD_NAME", wantErr: "CLOUD_NAME is required"},
		{name: "api key", missing: "API_KEY", wantErr: "API_KEY is required"},
		{name: "api secret", missing: "API_SECRET", wantErr: "API_SECRET is required"},
		{name: "mariadb dsn", extra: map[string]string{"METADATA_STORE": "mariadb"}, wantErr: "MARIADB_DSN is required"},
		{name: "minio endpoint", extra: map[string]string{"MEDIA_STORE": "minio"}, wantErr: "MINIO_ENDPOINT is required"},
		{name: "s3 region", extra: map[string]string{"MEDIA_STORE": "s3"}, wantErr: "S3_REGION is required"},
		{name: "redis for cleanup", extra: map[string]string{"ORPHAN_CLEANUP": "true"}, wantErr: "REDIS_ADDR is required when ORPHAN_CLEANUP is enabled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for k, v := range base {
				if k != tc.missing {
					t.Setenv(k, v)
				}
			}
			setAll(t, tc.extra)

			cfg, err := Load()
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("error = %q; want %q", err.Error(), tc.wantErr)
			}
			if cfg != nil {
				t.Errorf("expected cfg nil on error, got %#v", cfg)
			}
		})
	}
}

func TestLoad_InvalidChoices(t *testing.T) {
	cases := map[string]string{
		"UPLOAD_VARIANT": "both",
		"METADATA_STORE": "postgres",
		"MEDIA_STORE":    "ftp",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			setAll(t, map[string]string{
				"MONGODB_URI": "mongodb://localhost:27017",
				"CLOUD_NAME":  "demo",
				"API_KEY":     "key",
				"API_SECRET":  "secret",
				key:           val,
			})

			_, err := Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.HasPrefix(err.Error(), key+" must be one of") {
				t.Errorf("error = %q; want prefix %q", err.Error(), key+" must be one of")
			}
		})
	}
}
