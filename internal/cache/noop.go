package cache

import (
	"context"
	"time"

	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetRecordList(ctx context.Context) ([]byte, string, error) {
	return nil, "", nil // always cache miss
}

func (n *NoopCache) RecordListVersion(ctx context.Context) (int64, error) { return 0, nil }

func (n *NoopCache) SetRecordList(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration) {
}

func (n *NoopCache) DeleteRecordList(ctx context.Context) error { return nil }
