package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

type orphanRemoverSrv struct {
	store port.MediaStore
}

func NewOrphanRemover(store port.MediaStore) port.OrphanRemover {
	return &orphanRemoverSrv{store: store}
}

// RemoveOrphans deletes every key from the media store. A missing object
// counts as removed; other failures are collected so the task is retried.
func (s *orphanRemoverSrv) RemoveOrphans(ctx context.Context, in port.RemoveOrphansInput) error {
	var errs []error
	for _, key := range in.Keys {
		err := s.store.RemoveImage(ctx, key)
		switch {
		case err == nil:
			logger.Infof(ctx, "removed orphaned image %q", key)
		case errors.Is(err, ErrMediaStoreNotFound):
			logger.Warnf(ctx, "orphaned image %q was already gone", key)
		default:
			errs = append(errs, fmt.Errorf("remove %q: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
