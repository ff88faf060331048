package boltdb

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names owned by the entity store.
const (
	BucketProjects = "projects"
	BucketTasks    = "tasks"
)

// Client wraps the Bolt file backing the entity store. Each entity kind
// lives in its own bucket and records are stored as JSON documents.
type Client struct {
	db *bolt.DB
}

// Open initializes the Bolt file and ensures the entity buckets exist.
func Open(path string) (*Client, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{BucketProjects, BucketTasks} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Client{db: db}, nil
}

// DB exposes the underlying Bolt handle to repositories.
func (c *Client) DB() *bolt.DB {
	if c == nil {
		return nil
	}
	return c.db
}

// Ping verifies the store is readable.
func (c *Client) Ping() error {
	if c == nil || c.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return c.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(BucketProjects)) == nil {
			return bolt.ErrBucketNotFound
		}
		return nil
	})
}

// Stats exposes Bolt statistics for monitoring endpoints.
func (c *Client) Stats() bolt.Stats {
	if c == nil || c.db == nil {
		return bolt.Stats{}
	}
	return c.db.Stats()
}

// Close closes the Bolt database.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
