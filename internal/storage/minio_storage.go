package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/uuid"
)

type MinioStorage struct {
	client     minioClient
	bucketName string
	folder     string
	useSSL     bool
	genID      uuid.Gen
}

type Strg struct {
	Client minioClient
	useSSL bool
}

// compile-time check: *MinioStorage must satisfy port.MediaStore
var _ port.MediaStore = (*MinioStorage)(nil)

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*Strg, error) {
	logger.Info(context.Background(), "initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &Strg{Client: client, useSSL: useSSL}, nil
}

// WithBucket returns a store writing under folder inside bucket,
// creating the bucket when it is missing.
func (c *Strg) WithBucket(ctx context.Context, bucket, folder string) (*MinioStorage, error) {
	ok, err := c.Client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", bucket)
		if err := c.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, mapMinioErr(err)
		}
	}
	return &MinioStorage{client: c.Client, bucketName: bucket, folder: folder, useSSL: c.useSSL, genID: uuid.NewUUID}, nil
}

func (s *MinioStorage) UploadImage(ctx context.Context, img port.ImageFile) (port.StoredImage, error) {
	key := objectName(s.folder, s.genID(), img.Filename)
	logger.Infof(ctx, "saving image %q into bucket %q...", key, s.bucketName)

	size := img.Size
	if size <= 0 {
		size = -1
	}
	putOpts := minio.PutObjectOptions{ContentType: img.ContentType}
	if _, err := s.client.PutObject(ctx, s.bucketName, key, img.Content, size, putOpts); err != nil {
		return port.StoredImage{}, mapMinioErr(err)
	}
	return port.StoredImage{URL: s.PublicURL(key), Key: key}, nil
}

// RemoveImage deletes the object. MinIO answers a delete of a missing key
// with success, so existence is checked first.
func (s *MinioStorage) RemoveImage(ctx context.Context, key string) error {
	logger.Infof(ctx, "removing image %q from bucket %q...", key, s.bucketName)

	if _, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{}); err != nil {
		return mapMinioErr(err)
	}
	return mapMinioErr(s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{}))
}

func (s *MinioStorage) PublicURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucketName, key)
}
