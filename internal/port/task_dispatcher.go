package port

import "context"

// TaskDispatcher enqueues asynchronous maintenance tasks.
type TaskDispatcher interface {
	EnqueueRemoveOrphans(ctx context.Context, keys []string) error
}
