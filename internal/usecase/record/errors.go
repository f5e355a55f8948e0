package record

import (
	"errors"
	"fmt"
)

var (
	ErrNoImages      = errors.New("no image uploaded")
	ErrTooManyImages = errors.New("too many images uploaded")
	ErrMediaUpload   = errors.New("media store upload failed")
	ErrPersist       = errors.New("could not save record")
	ErrList          = errors.New("could not list records")
)

var (
	ErrMediaStoreNotFound     = errors.New("media store: object not found")
	ErrMediaStoreUnauthorized = errors.New("media store: unauthorized")
	ErrMediaStoreInternal     = errors.New("media store: internal error")
)

// MediaUploadError reports which image of a request failed to upload.
type MediaUploadError struct {
	Index    int
	Filename string
	Err      error
}

func (e *MediaUploadError) Error() string {
	return fmt.Sprintf("upload of image #%d (%q) failed: %v", e.Index, e.Filename, e.Err)
}

func (e *MediaUploadError) Unwrap() []error {
	return []error{ErrMediaUpload, e.Err}
}
