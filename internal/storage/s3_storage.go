package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/uuid"
)

type S3Storage struct {
	client   s3Client
	uploader s3Uploader
	bucket   string
	region   string
	folder   string
	genID    uuid.Gen
}

// compile-time check: *S3Storage must satisfy port.MediaStore
var _ port.MediaStore = (*S3Storage)(nil)

// NewS3Storage loads credentials from the default AWS chain.
func NewS3Storage(ctx context.Context, region, bucket, folder string) (*S3Storage, error) {
	logger.Infof(ctx, "initialising s3 client for bucket %q...", bucket)
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	return &S3Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
		folder:   folder,
		genID:    uuid.NewUUID,
	}, nil
}

func (s *S3Storage) UploadImage(ctx context.Context, img port.ImageFile) (port.StoredImage, error) {
	key := objectName(s.folder, s.genID(), img.Filename)
	logger.Infof(ctx, "saving image %q into bucket %q...", key, s.bucket)

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   img.Content,
	}
	if img.ContentType != "" {
		in.ContentType = aws.String(img.ContentType)
	}
	if _, err := s.uploader.Upload(ctx, in); err != nil {
		return port.StoredImage{}, mapS3Err(err)
	}
	return port.StoredImage{URL: s.PublicURL(key), Key: key}, nil
}

// RemoveImage deletes the object. S3 answers a delete of a missing key
// with success, so existence is checked first.
func (s *S3Storage) RemoveImage(ctx context.Context, key string) error {
	logger.Infof(ctx, "removing image %q from bucket %q...", key, s.bucket)

	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return mapS3Err(err)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return mapS3Err(err)
}

func (s *S3Storage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
