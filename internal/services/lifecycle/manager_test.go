package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShutdownRunsHooksInReverseOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"store", "bus", "server"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"server", "bus", "store"}
	if len(order) != len(want) {
		t.Fatalf("expected %d hooks to run, got %d", len(want), len(order))
	}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("expected %s at position %d, got %s", name, i, order[i])
		}
	}
}

func TestShutdownCollectsHookErrors(t *testing.T) {
	m := New(time.Second, nil)

	hookErr := errors.New("close failed")
	m.Register("broken", func(ctx context.Context) error { return hookErr })

	ran := false
	m.Register("fine", func(ctx context.Context) error {
		ran = true
		return nil
	})

	err := m.Shutdown(context.Background())
	if !errors.Is(err, hookErr) {
		t.Fatalf("expected the hook error to surface, got %v", err)
	}
	if !ran {
		t.Fatalf("a failing hook must not stop the remaining hooks")
	}
}

func TestShutdownRunsOnlyOnce(t *testing.T) {
	m := New(time.Second, nil)

	runs := 0
	m.Register("counter", func(ctx context.Context) error {
		runs++
		return nil
	})

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs != 1 {
		t.Fatalf("hooks must run once, ran %d times", runs)
	}
}
