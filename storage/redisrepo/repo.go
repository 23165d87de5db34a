package redisrepo

import (
	"context"
	"fmt"
	"time"

	autherrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"github.com/jrsteele09/go-auth-session/storage"
	"github.com/redis/go-redis/v9"
)

var _ storage.Repo = (*Repo)(nil)

// Repo keeps session values in a single redis hash, so several clients can
// share one server by using different namespaces.
type Repo struct {
	client *redis.Client
	key    string
}

// New wraps an existing redis client. All values live in the hash
// "<namespace>:session".
func New(client *redis.Client, namespace string) *Repo {
	return &Repo{
		client: client,
		key:    fmt.Sprintf("%s:session", namespace),
	}
}

// Dial parses redisURL, connects and checks the connection.
func Dial(ctx context.Context, redisURL, namespace string) (*Repo, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return New(client, namespace), nil
}

func (r *Repo) Close() error {
	return r.client.Close()
}

func (r *Repo) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key, key).Result()
	if autherrors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return v, true, nil
}

func (r *Repo) Set(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, r.key, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (r *Repo) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
