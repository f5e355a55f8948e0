package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

type TestBucket struct {
	Name    string
	Cleanup func() error
}

// SetupTestBucket reserves a fresh bucket name. The store under test
// creates the bucket itself; Cleanup empties and removes it.
func SetupTestBucket(client *minio.Client) *TestBucket {
	name := fmt.Sprintf("trucks-%d", time.Now().UnixNano())
	ctx := context.Background()

	cleanup := func() error {
		ok, err := client.BucketExists(ctx, name)
		if err != nil || !ok {
			return err
		}
		for obj := range client.ListObjects(ctx, name, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				continue
			}
			_ = client.RemoveObject(ctx, name, obj.Key, minio.RemoveObjectOptions{})
		}
		if err := client.RemoveBucket(ctx, name); err != nil {
			return fmt.Errorf("could not remove bucket %q: %w", name, err)
		}
		return nil
	}

	return &TestBucket{Name: name, Cleanup: cleanup}
}

// ObjectKeys lists every object stored in bucket.
func ObjectKeys(ctx context.Context, client *minio.Client, bucket string) ([]string, error) {
	var keys []string
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
