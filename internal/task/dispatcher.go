package task

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

const (
	removeOrphansMaxRetry = 10
	removeOrphansTimeout  = 2 * time.Minute
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueRemoveOrphans(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	t, err := NewRemoveOrphansTask(keys)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t,
		asynq.MaxRetry(removeOrphansMaxRetry),
		asynq.Timeout(removeOrphansTimeout),
	); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
