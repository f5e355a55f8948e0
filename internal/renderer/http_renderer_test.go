package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"
	"time"

	"github.com/satvik2131/lamars-truck-backend/internal/mock"
	"github.com/satvik2131/lamars-truck-backend/internal/model"
)

func TestRenderListRecords_Cases(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		c := &mock.Cache{ListOut: []byte(`[{"name":"cached"}]`), EtagOut: "\"1234\""}
		r := NewHTTPRenderer(c, time.Minute)
		lister := &mock.RecordLister{}

		out, etag, err := r.RenderListRecords(ctx, lister)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != string(c.ListOut) {
			t.Errorf("raw mismatch: got %s want %s", out, c.ListOut)
		}
		if etag != c.EtagOut {
			t.Errorf("etag mismatch: got %s want %s", etag, c.EtagOut)
		}
		if lister.Calls != 0 {
			t.Error("lister should not be called on cache hit")
		}
		if c.SetListCalled {
			t.Error("cache should not be set on hit")
		}
	})

	t.Run("cache miss", func(t *testing.T) {
		c := &mock.Cache{Version: 7}
		recs := []model.Record{{ID: "66f1", Name: "truck1", Description: "red", ImageURL: "https://x/1.png"}}
		lister := &mock.RecordLister{Out: recs}
		r := NewHTTPRenderer(c, time.Minute)

		out, etag, err := r.RenderListRecords(ctx, lister)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected, _ := json.Marshal(recs)
		if string(out) != string(expected) {
			t.Errorf("raw mismatch: got %s want %s", out, expected)
		}
		expEtag := fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(expected))
		if etag != expEtag {
			t.Errorf("etag mismatch: got %s want %s", etag, expEtag)
		}
		if lister.Calls != 1 {
			t.Errorf("lister calls = %d; want 1", lister.Calls)
		}
		if string(c.SetData) != string(expected) || c.SetEtag != expEtag || c.SetTTL != time.Minute {
			t.Errorf("cache write mismatch: %s %s %v", c.SetData, c.SetEtag, c.SetTTL)
		}
		if c.SetVersion != 7 {
			t.Errorf("cache write version = %d; want 7", c.SetVersion)
		}
	})

	t.Run("empty listing", func(t *testing.T) {
		r := NewHTTPRenderer(&mock.Cache{}, time.Minute)
		out, _, err := r.RenderListRecords(ctx, &mock.RecordLister{Out: []model.Record{}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "[]" {
			t.Errorf("raw = %s; want []", out)
		}
	})

	t.Run("caching disabled", func(t *testing.T) {
		c := &mock.Cache{}
		r := NewHTTPRenderer(c, 0)
		if _, _, err := r.RenderListRecords(ctx, &mock.RecordLister{Out: []model.Record{}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.SetListCalled {
			t.Error("cache should not be written with a zero ttl")
		}
	})

	t.Run("cache error falls through", func(t *testing.T) {
		c := &mock.Cache{ListOut: []byte(`[]`), EtagOut: "\"1\"", GetListErr: errors.New("redis down")}
		lister := &mock.RecordLister{Out: []model.Record{}}
		r := NewHTTPRenderer(c, time.Minute)

		if _, _, err := r.RenderListRecords(ctx, lister); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lister.Calls != 1 {
			t.Error("lister should be called when the cache fails")
		}
	})

	t.Run("lister error", func(t *testing.T) {
		c := &mock.Cache{}
		l := &mock.RecordLister{Err: errors.New("fail")}
		r := NewHTTPRenderer(c, time.Minute)

		_, _, err := r.RenderListRecords(ctx, l)
		if err == nil || err.Error() != "fail" {
			t.Fatalf("expected fail error, got %v", err)
		}
		if c.SetListCalled {
			t.Error("cache should not be set on error")
		}
	})

	t.Run("version error skips cache write", func(t *testing.T) {
		c := &mock.Cache{VersionErr: errors.New("redis down")}
		lister := &mock.RecordLister{Out: []model.Record{}}
		r := NewHTTPRenderer(c, time.Minute)

		out, _, err := r.RenderListRecords(ctx, lister)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "[]" {
			t.Errorf("raw = %s; want []", out)
		}
		if c.SetListCalled {
			t.Error("cache should not be written without a known version")
		}
	})
}
