package mock

import (
	"context"

	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	Raw  []byte
	Etag string
	Err  error

	Called bool
}

func (m *HTTPRenderer) RenderListRecords(ctx context.Context, lister port.RecordLister) ([]byte, string, error) {
	m.Called = true
	return m.Raw, m.Etag, m.Err
}
