// Package storagetest holds the behaviour every storage.Repo implementation
// must share, so each backend can run the same checks against itself.
package storagetest

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-auth-session/storage"
	"github.com/stretchr/testify/require"
)

// RunRepoContract exercises repo against the storage.Repo contract.
// newRepo must return an empty repository on every call.
func RunRepoContract(t *testing.T, newRepo func(t *testing.T) storage.Repo) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		repo := newRepo(t)
		v, ok, err := repo.Get(ctx, storage.KeyAccessToken)
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Set(ctx, storage.KeyAccessToken, "access-1"))
		require.NoError(t, repo.Set(ctx, storage.KeyRefreshToken, "refresh-1"))

		v, ok, err := repo.Get(ctx, storage.KeyAccessToken)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "access-1", v)

		v, ok, err = repo.Get(ctx, storage.KeyRefreshToken)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "refresh-1", v)
	})

	t.Run("set replaces", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Set(ctx, storage.KeyAccessToken, "old"))
		require.NoError(t, repo.Set(ctx, storage.KeyAccessToken, "new"))

		v, ok, err := repo.Get(ctx, storage.KeyAccessToken)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "new", v)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Set(ctx, storage.KeyAccessToken, "a"))
		require.NoError(t, repo.Set(ctx, storage.KeyRefreshToken, "r"))
		require.NoError(t, repo.Clear(ctx))

		for _, key := range []string{storage.KeyAccessToken, storage.KeyRefreshToken} {
			_, ok, err := repo.Get(ctx, key)
			require.NoError(t, err)
			require.False(t, ok, key)
		}
	})

	t.Run("clear on empty repo", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Clear(ctx))
		require.NoError(t, repo.Set(ctx, storage.KeyAccessToken, "after-clear"))

		v, ok, err := repo.Get(ctx, storage.KeyAccessToken)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "after-clear", v)
	})
}
