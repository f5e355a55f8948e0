package task

import (
	"context"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

func TestRemoveOrphansTask(t *testing.T) {
	keys := []string{"uploads/a.png", "uploads/b.png"}
	tk, err := NewRemoveOrphansTask(keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Type() != TypeRemoveOrphans {
		t.Errorf("type = %q; want %q", tk.Type(), TypeRemoveOrphans)
	}
	if string(tk.Payload()) != `{"keys":["uploads/a.png","uploads/b.png"]}` {
		t.Errorf("payload = %s", tk.Payload())
	}

	p, err := ParseRemoveOrphansPayload(tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.Keys, keys) {
		t.Errorf("keys = %v; want %v", p.Keys, keys)
	}
}

func TestParseRemoveOrphansPayload_Invalid(t *testing.T) {
	if _, err := ParseRemoveOrphansPayload(asynq.NewTask(TypeRemoveOrphans, []byte("{"))); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestDispatcher_EnqueueRemoveOrphans(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	defer mr.Close()

	d := NewDispatcher(mr.Addr(), "")
	defer func() { _ = d.Close() }()

	if err := d.EnqueueRemoveOrphans(context.Background(), nil); err != nil {
		t.Fatalf("empty enqueue: %v", err)
	}
	if mr.Exists("asynq:{default}:pending") {
		t.Fatal("nothing should be enqueued for an empty key list")
	}

	if err := d.EnqueueRemoveOrphans(context.Background(), []string{"uploads/a.png"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	pending, err := mr.List("asynq:{default}:pending")
	if err != nil {
		t.Fatalf("pending list: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("pending tasks = %d; want 1", len(pending))
	}
}

func TestNoopDispatcher(t *testing.T) {
	if err := NewNoopDispatcher().EnqueueRemoveOrphans(context.Background(), []string{"k"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
