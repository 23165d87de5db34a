package redisrepo_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-auth-session/storage"
	"github.com/jrsteele09/go-auth-session/storage/redisrepo"
	"github.com/jrsteele09/go-auth-session/storage/storagetest"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRepo(t *testing.T) {
	storagetest.RunRepoContract(t, func(t *testing.T) storage.Repo {
		_, client := newRedisClient(t)
		return redisrepo.New(client, "test")
	})
}

func TestRedisRepo_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedisClient(t)

	a := redisrepo.New(client, "a")
	b := redisrepo.New(client, "b")

	require.NoError(t, a.Set(ctx, storage.KeyAccessToken, "token-a"))
	require.NoError(t, b.Set(ctx, storage.KeyAccessToken, "token-b"))
	require.NoError(t, a.Clear(ctx))

	_, ok, err := a.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err := b.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "token-b", v)

	require.Equal(t, "token-b", mr.HGet("b:session", storage.KeyAccessToken))
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)

	repo, err := redisrepo.Dial(context.Background(), "redis://"+mr.Addr()+"/0", "dial")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.Set(context.Background(), storage.KeyRefreshToken, "r"))
	require.Equal(t, "r", mr.HGet("dial:session", storage.KeyRefreshToken))
}

func TestDial_BadURL(t *testing.T) {
	_, err := redisrepo.Dial(context.Background(), "not a url", "x")
	require.Error(t, err)
}
