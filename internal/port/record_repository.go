package port

import (
	"context"

	"github.com/satvik2131/lamars-truck-backend/internal/model"
)

// RecordRepository defines persistence operations for media records.
type RecordRepository interface {
	// Create persists the record and sets its ID and CreatedAt.
	Create(ctx context.Context, rec *model.Record) error
	// List returns every record in the store's natural order.
	List(ctx context.Context) ([]model.Record, error)
}
