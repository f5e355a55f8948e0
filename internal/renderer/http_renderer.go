package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

type httpRenderer struct {
	cache port.Cache
	ttl   time.Duration
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a renderer caching listings for ttl.
func NewHTTPRenderer(cache port.Cache, ttl time.Duration) port.HTTPRenderer {
	return &httpRenderer{cache: cache, ttl: ttl}
}

// RenderListRecords fetches the listing either from cache or from the wrapped
// use case. It returns the JSON encoded output and a quoted ETag string.
// A listing is only cached when no record was created while it was read.
func (r *httpRenderer) RenderListRecords(ctx context.Context, lister port.RecordLister) ([]byte, string, error) {
	raw, etag, err := r.cache.GetRecordList(ctx)
	if err == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	// read before listing so a concurrent create invalidates this render
	version, errVersion := r.cache.RecordListVersion(ctx)

	out, err := lister.ListRecords(ctx)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = ETag(raw)
	if r.ttl > 0 && errVersion == nil {
		r.cache.SetRecordList(ctx, version, raw, etag, r.ttl)
	}

	return raw, etag, nil
}

// ETag returns the quoted CRC32 of raw.
func ETag(raw []byte) string {
	return fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
}
