package port

import (
	"context"

	"github.com/satvik2131/lamars-truck-backend/internal/model"
)

// RecordCreator uploads images and persists the resulting record.
type RecordCreator interface {
	CreateRecord(ctx context.Context, in CreateRecordInput) (*model.Record, error)
}
type CreateRecordInput struct {
	Name        string
	Description string
	Images      []ImageFile
}

// RecordLister returns every persisted record.
type RecordLister interface {
	ListRecords(ctx context.Context) ([]model.Record, error)
}

// OrphanRemover deletes remote images no record references.
type OrphanRemover interface {
	RemoveOrphans(ctx context.Context, in RemoveOrphansInput) error
}
type RemoveOrphansInput struct {
	Keys []string
}
