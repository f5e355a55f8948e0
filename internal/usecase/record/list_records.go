package record

import (
	"context"
	"fmt"

	"github.com/satvik2131/lamars-truck-backend/internal/model"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

type recordListerSrv struct {
	repo port.RecordRepository
}

func NewRecordLister(repo port.RecordRepository) port.RecordLister {
	return &recordListerSrv{repo: repo}
}

// ListRecords returns every record in store order, never nil.
func (s *recordListerSrv) ListRecords(ctx context.Context) ([]model.Record, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrList, err)
	}
	if recs == nil {
		recs = []model.Record{}
	}
	return recs, nil
}
