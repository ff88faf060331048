package boltdb

import (
	"path/filepath"
	"testing"

	infra "github.com/taskboard/backend/internal/infrastructure/boltdb"
)

// newTestClient opens an entity store in a temp directory and closes it
// when the test completes.
func newTestClient(t *testing.T) *infra.Client {
	t.Helper()

	client, err := infra.Open(filepath.Join(t.TempDir(), "entities.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})
	return client
}
