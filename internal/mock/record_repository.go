package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/satvik2131/lamars-truck-backend/internal/model"
)

// RecordRepo implements port.RecordRepository for tests.
type RecordRepo struct {
	Records []model.Record

	CreateErr error
	ListErr   error

	Created      *model.Record
	CreateCalled bool
	ListCalls    int
}

func (m *RecordRepo) Create(ctx context.Context, rec *model.Record) error {
	m.CreateCalled = true
	m.Created = rec
	if m.CreateErr != nil {
		return m.CreateErr
	}
	n := len(m.Records) + 1
	rec.ID = fmt.Sprintf("%024x", n)
	rec.CreatedAt = time.Date(2024, 9, 23, 10, 0, n, 0, time.UTC)
	m.Records = append(m.Records, *rec)
	return nil
}

func (m *RecordRepo) List(ctx context.Context) ([]model.Record, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]model.Record(nil), m.Records...), nil
}
