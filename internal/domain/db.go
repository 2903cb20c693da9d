package domain

import "context"

// Database defines lifecycle operations for the underlying registration store.
// Each implementation (SQLite, Postgres, Redis) owns its own schema setup,
// so the storage backend is swappable from configuration alone.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
