package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/internal/bus"
	"github.com/taskboard/backend/internal/infrastructure/journal"
)

func TestRecorderJournalsPublishedEvents(t *testing.T) {
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("opening test journal: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	eventBus := bus.New(nil)
	recorder := NewRecorder(eventBus, store, nil, RecorderConfig{})
	recorder.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		recorder.Stop(ctx)
	})

	eventBus.Publish(domain.EventProjectCreated, &domain.Project{ID: "p1", Name: "n", Description: "d"})
	eventBus.Publish(domain.EventTaskDeleted, "t1")

	deadline := time.Now().Add(2 * time.Second)
	for {
		size, err := store.Size()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if size == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 journal entries, got %d", size)
		}
		time.Sleep(10 * time.Millisecond)
	}

	entries, err := store.List(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[domain.EventKind]bool{}
	for _, entry := range entries {
		seen[entry.Kind] = true
	}
	if !seen[domain.EventProjectCreated] || !seen[domain.EventTaskDeleted] {
		t.Fatalf("expected both kinds journaled, got %v", seen)
	}
}
