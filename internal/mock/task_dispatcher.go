package mock

import "context"

// TaskDispatcher implements port.TaskDispatcher for tests.
type TaskDispatcher struct {
	Err error

	Called bool
	Keys   []string
}

func (d *TaskDispatcher) EnqueueRemoveOrphans(ctx context.Context, keys []string) error {
	d.Called = true
	d.Keys = append([]string(nil), keys...)
	return d.Err
}
