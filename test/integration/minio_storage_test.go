package integration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"

	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/storage"
	recordSvc "github.com/satvik2131/lamars-truck-backend/internal/usecase/record"
	"github.com/satvik2131/lamars-truck-backend/test/testutil"
)

func setupMinioStorage(t *testing.T) (*storage.MinioStorage, string, func()) {
	t.Helper()

	tb := testutil.SetupTestBucket(MinioAdmin)
	strg, err := GlobalStrg.WithBucket(context.Background(), tb.Name, "trucks")
	if err != nil {
		_ = tb.Cleanup()
		t.Fatalf("init bucket %q: %v", tb.Name, err)
	}
	return strg, tb.Name, func() {
		if err := tb.Cleanup(); err != nil {
			t.Errorf("cleanup bucket: %v", err)
		}
	}
}

func TestMinioStorageIntegration_UploadAndRemove(t *testing.T) {
	ctx := context.Background()
	strg, bucket, cleanup := setupMinioStorage(t)
	defer cleanup()

	content := testutil.GeneratePNG(t, 8, 8)
	out, err := strg.UploadImage(ctx, port.ImageFile{
		Filename:    "Front.PNG",
		ContentType: "image/png",
		Size:        int64(len(content)),
		Content:     bytes.NewReader(content),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(out.Key, "trucks/") || !strings.HasSuffix(out.Key, ".png") {
		t.Errorf("unexpected key %q", out.Key)
	}
	if !strings.HasSuffix(out.URL, "/"+bucket+"/"+out.Key) {
		t.Errorf("URL %q does not point to %s/%s", out.URL, bucket, out.Key)
	}

	obj, err := MinioAdmin.GetObject(ctx, bucket, out.Key, minio.GetObjectOptions{})
	if err != nil {
		t.Fatalf("get object: %v", err)
	}
	stored, err := io.ReadAll(obj)
	if err != nil {
		t.Fatalf("read object: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Error("stored content differs from uploaded content")
	}
	info, err := MinioAdmin.StatObject(ctx, bucket, out.Key, minio.StatObjectOptions{})
	if err != nil {
		t.Fatalf("stat object: %v", err)
	}
	if info.ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", info.ContentType)
	}

	if err := strg.RemoveImage(ctx, out.Key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	keys, err := testutil.ObjectKeys(ctx, MinioAdmin, bucket)
	if err != nil {
		t.Fatalf("list objects: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected empty bucket after removal, got %v", keys)
	}
}

func TestMinioStorageIntegration_UnknownSize(t *testing.T) {
	ctx := context.Background()
	strg, bucket, cleanup := setupMinioStorage(t)
	defer cleanup()

	out, err := strg.UploadImage(ctx, port.ImageFile{
		Filename: "side.jpg",
		Content:  strings.NewReader("jpeg bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	info, err := MinioAdmin.StatObject(ctx, bucket, out.Key, minio.StatObjectOptions{})
	if err != nil {
		t.Fatalf("stat object: %v", err)
	}
	if info.Size != int64(len("jpeg bytes")) {
		t.Errorf("size = %d", info.Size)
	}
}

func TestMinioStorageIntegration_RemoveMissing(t *testing.T) {
	strg, _, cleanup := setupMinioStorage(t)
	defer cleanup()

	err := strg.RemoveImage(context.Background(), "trucks/missing.png")
	if !errors.Is(err, recordSvc.ErrMediaStoreNotFound) {
		t.Fatalf("expected ErrMediaStoreNotFound, got %v", err)
	}
}

func TestMinioStorageIntegration_PublicURLServesObject(t *testing.T) {
	ctx := context.Background()
	strg, bucket, cleanup := setupMinioStorage(t)
	defer cleanup()

	policy := `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},` +
		`"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::` + bucket + `/*"]}]}`
	if err := MinioAdmin.SetBucketPolicy(ctx, bucket, policy); err != nil {
		t.Fatalf("set bucket policy: %v", err)
	}

	out, err := strg.UploadImage(ctx, port.ImageFile{
		Filename:    "rear.png",
		ContentType: "image/png",
		Content:     strings.NewReader("png"),
		Size:        3,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	resp, err := http.Get(out.URL)
	if err != nil {
		t.Fatalf("GET %s: %v", out.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from %s, got %d", out.URL, resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "png" {
		t.Errorf("body = %q", body)
	}
}
