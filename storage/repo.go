package storage

import "context"

// Keys under which session credentials are persisted.
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refresh"
)

// Repo is the client's persistent key-value store for session state.
// Implementations must be safe for concurrent use; callers do not coordinate
// access between them.
type Repo interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Clear removes every key
	Clear(ctx context.Context) error
}
