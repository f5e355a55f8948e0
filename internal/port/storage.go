package port

import (
	"context"
	"io"
)

// ImageFile is one image part received from a client.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// StoredImage is the result of a successful media store upload.
// Key identifies the remote object for later removal.
type StoredImage struct {
	URL string
	Key string
}

// MediaStore stores images on a remote host and returns their retrieval URL.
type MediaStore interface {
	UploadImage(ctx context.Context, img ImageFile) (StoredImage, error)
	RemoveImage(ctx context.Context, key string) error
}
