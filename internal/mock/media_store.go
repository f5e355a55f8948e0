package mock

import (
	"context"
	"fmt"
	"io"

	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

// MediaStore implements port.MediaStore for tests. Uploads return
// URLs derived from the call index unless FailAt matches.
type MediaStore struct {
	// FailAt is the zero-based upload call that fails with UploadErr; -1 never.
	FailAt    int
	UploadErr error
	RemoveErr map[string]error

	// captured inputs
	Uploaded      []port.ImageFile
	UploadedBytes [][]byte
	Removed       []string

	// call counters
	UploadCalls int
	RemoveCalls int
}

// NewMediaStore returns a store that never fails.
func NewMediaStore() *MediaStore {
	return &MediaStore{FailAt: -1}
}

func URLFor(i int) string {
	return fmt.Sprintf("https://res.example.com/demo/image/upload/uploads/img-%d.png", i)
}

func KeyFor(i int) string {
	return fmt.Sprintf("uploads/img-%d", i)
}

func (m *MediaStore) UploadImage(ctx context.Context, img port.ImageFile) (port.StoredImage, error) {
	i := m.UploadCalls
	m.UploadCalls++
	m.Uploaded = append(m.Uploaded, img)
	if img.Content != nil {
		b, _ := io.ReadAll(img.Content)
		m.UploadedBytes = append(m.UploadedBytes, b)
	}
	if i == m.FailAt {
		return port.StoredImage{}, m.UploadErr
	}
	return port.StoredImage{URL: URLFor(i), Key: KeyFor(i)}, nil
}

func (m *MediaStore) RemoveImage(ctx context.Context, key string) error {
	m.RemoveCalls++
	m.Removed = append(m.Removed, key)
	return m.RemoveErr[key]
}
