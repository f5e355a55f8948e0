package port

import "context"

// HTTPRenderer mediates between HTTP handlers and the record lister use case.
// It provides caching capabilities and returns both the JSON representation of
// the listing as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderListRecords returns the cached JSON listing and its ETag if available or
	// executes the underlying use case and caches the output otherwise.
	RenderListRecords(ctx context.Context, lister RecordLister) ([]byte, string, error)
}
