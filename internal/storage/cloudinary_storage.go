package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/uuid"
)

const cloudinaryResourceType = "image"

type CloudinaryStorage struct {
	api    cloudinaryAPI
	folder string
	genID  uuid.Gen
}

// compile-time check: *CloudinaryStorage must satisfy port.MediaStore
var _ port.MediaStore = (*CloudinaryStorage)(nil)

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	logger.Info(context.Background(), "initialising cloudinary client...")
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStorage{api: &cld.Upload, folder: folder, genID: uuid.NewUUID}, nil
}

// UploadImage stores the image as "<folder>/<id>" and returns its
// secure delivery URL. The returned key is the Cloudinary public ID.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, img port.ImageFile) (port.StoredImage, error) {
	publicID := s.genID().String()
	logger.Infof(ctx, "uploading image %q to cloudinary folder %q...", publicID, s.folder)

	res, err := s.api.Upload(ctx, img.Content, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: cloudinaryResourceType,
	})
	if err != nil {
		return port.StoredImage{}, mapCloudinaryErr(err, "")
	}
	if res == nil {
		return port.StoredImage{}, mapCloudinaryErr(nil, "empty upload response")
	}
	if res.Error.Message != "" {
		return port.StoredImage{}, mapCloudinaryErr(nil, res.Error.Message)
	}

	key := res.PublicID
	if key == "" {
		key = joinKey(s.folder, publicID)
	}
	return port.StoredImage{URL: res.SecureURL, Key: key}, nil
}

func (s *CloudinaryStorage) RemoveImage(ctx context.Context, key string) error {
	logger.Infof(ctx, "removing image %q from cloudinary...", key)

	res, err := s.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     key,
		ResourceType: cloudinaryResourceType,
	})
	if err != nil {
		return mapCloudinaryErr(err, "")
	}
	if res == nil {
		return mapCloudinaryErr(nil, "empty destroy response")
	}
	if res.Error.Message != "" {
		return mapCloudinaryErr(nil, res.Error.Message)
	}
	switch res.Result {
	case "ok":
		return nil
	case "not found":
		return mapCloudinaryErr(nil, res.Result)
	default:
		return mapCloudinaryErr(nil, "unexpected destroy result "+res.Result)
	}
}
