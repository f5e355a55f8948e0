package record

import (
	"context"
	"fmt"

	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/model"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

type recordCreatorSrv struct {
	layout     model.URLLayout
	store      port.MediaStore
	repo       port.RecordRepository
	cache      port.Cache
	dispatcher port.TaskDispatcher
}

// compile-time check: *recordCreatorSrv must satisfy port.RecordCreator
var _ port.RecordCreator = (*recordCreatorSrv)(nil)

// NewRecordCreator builds the upload use case for the given URL layout.
func NewRecordCreator(layout model.URLLayout, store port.MediaStore, repo port.RecordRepository, cache port.Cache, dispatcher port.TaskDispatcher) port.RecordCreator {
	return &recordCreatorSrv{layout: layout, store: store, repo: repo, cache: cache, dispatcher: dispatcher}
}

// MaxImages is the number of images one request may carry for the layout.
func MaxImages(layout model.URLLayout) int {
	if layout == model.LayoutMulti {
		return model.MaxImagesPerRecord
	}
	return 1
}

// CreateRecord uploads every image, strictly one after the other in the
// received order, then writes a single record referencing them. The first
// failed upload aborts the request. Images already stored by an aborted
// request are handed to the orphan dispatcher, never rolled back inline.
func (s *recordCreatorSrv) CreateRecord(ctx context.Context, in port.CreateRecordInput) (*model.Record, error) {
	if len(in.Images) == 0 {
		return nil, ErrNoImages
	}
	if len(in.Images) > MaxImages(s.layout) {
		return nil, ErrTooManyImages
	}
	if err := model.ValidateText(in.Name, in.Description); err != nil {
		return nil, err
	}

	stored := make([]port.StoredImage, 0, len(in.Images))
	for i, img := range in.Images {
		logger.Infof(ctx, "uploading image #%d (%q) to the media store...", i, img.Filename)
		out, err := s.store.UploadImage(ctx, img)
		if err != nil {
			s.releaseOrphans(ctx, stored)
			return nil, &MediaUploadError{Index: i, Filename: img.Filename, Err: err}
		}
		stored = append(stored, out)
	}

	urls := make([]string, len(stored))
	for i, st := range stored {
		urls[i] = st.URL
	}

	rec, err := model.NewRecord(s.layout, in.Name, in.Description, urls)
	if err != nil {
		s.releaseOrphans(ctx, stored)
		return nil, err
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.releaseOrphans(ctx, stored)
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if err := s.cache.DeleteRecordList(ctx); err != nil {
		logger.Warnf(ctx, "failed to invalidate the record listing cache: %v", err)
	}

	return rec, nil
}

func (s *recordCreatorSrv) releaseOrphans(ctx context.Context, stored []port.StoredImage) {
	if len(stored) == 0 {
		return
	}

	keys := make([]string, len(stored))
	for i, st := range stored {
		keys[i] = st.Key
		logger.Warnf(ctx, "⚠️  image %q is not referenced by any record", st.URL)
	}

	// the request may already be cancelled, the task must still be enqueued
	if err := s.dispatcher.EnqueueRemoveOrphans(context.WithoutCancel(ctx), keys); err != nil {
		logger.Errorf(ctx, "❌  failed to enqueue orphan removal for %d image(s): %v", len(keys), err)
	}
}
