package mock

import (
	"context"
	"io"

	"github.com/satvik2131/lamars-truck-backend/internal/model"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

// RecordCreator implements port.RecordCreator for tests.
type RecordCreator struct {
	Out *model.Record
	Err error

	// Panic makes CreateRecord panic with the given value.
	Panic any

	Called bool
	In     port.CreateRecordInput
	// Bodies holds the content of each image, read during the call.
	Bodies []string
}

func (m *RecordCreator) CreateRecord(ctx context.Context, in port.CreateRecordInput) (*model.Record, error) {
	m.Called = true
	m.In = in
	for _, img := range in.Images {
		m.Bodies = append(m.Bodies, readAll(img.Content))
	}
	if m.Panic != nil {
		panic(m.Panic)
	}
	return m.Out, m.Err
}

// RecordLister implements port.RecordLister for tests.
type RecordLister struct {
	Out []model.Record
	Err error

	Calls int
}

func (m *RecordLister) ListRecords(ctx context.Context) ([]model.Record, error) {
	m.Calls++
	return m.Out, m.Err
}

// OrphanRemover implements port.OrphanRemover for tests.
type OrphanRemover struct {
	Err error

	Called bool
	In     port.RemoveOrphansInput
}

func (m *OrphanRemover) RemoveOrphans(ctx context.Context, in port.RemoveOrphansInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

func readAll(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(r)
	return string(b)
}
