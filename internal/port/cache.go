package port

import (
	"context"
	"time"
)

// Cache keeps the rendered record listing together with its ETag.
// Every write that changes the records bumps the listing version;
// SetRecordList only stores a listing rendered at the current version.
type Cache interface {
	GetRecordList(ctx context.Context) ([]byte, string, error)
	RecordListVersion(ctx context.Context) (int64, error)
	SetRecordList(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration)
	DeleteRecordList(ctx context.Context) error
}
