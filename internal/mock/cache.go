package mock

import (
	"context"
	"time"
)

// Cache implements port.Cache for tests.
type Cache struct {
	// stored values
	ListOut []byte
	EtagOut string
	Version int64

	// captured inputs
	SetData    []byte
	SetEtag    string
	SetTTL     time.Duration
	SetVersion int64

	// errors
	GetListErr error
	VersionErr error
	DelErr     error

	// call flags
	GetListCalled bool
	SetListCalled bool
	DelCalled     bool
}

func (c *Cache) GetRecordList(ctx context.Context) ([]byte, string, error) {
	c.GetListCalled = true
	if c.GetListErr != nil {
		return nil, "", c.GetListErr
	}
	return c.ListOut, c.EtagOut, nil
}

func (c *Cache) RecordListVersion(ctx context.Context) (int64, error) {
	if c.VersionErr != nil {
		return 0, c.VersionErr
	}
	return c.Version, nil
}

func (c *Cache) SetRecordList(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration) {
	c.SetListCalled = true
	c.SetVersion = version
	c.SetData = data
	c.SetEtag = etag
	c.SetTTL = ttl
}

func (c *Cache) DeleteRecordList(ctx context.Context) error {
	c.DelCalled = true
	c.Version++
	return c.DelErr
}
