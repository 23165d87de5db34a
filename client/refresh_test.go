package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/go-auth-session/apimodel"
	"github.com/jrsteele09/go-auth-session/authtest"
	"github.com/jrsteele09/go-auth-session/client"
	"github.com/jrsteele09/go-auth-session/session"
	"github.com/jrsteele09/go-auth-session/storage"
	"github.com/stretchr/testify/require"
)

func TestRefreshToken_NoRefreshTokenTerminatesWithoutNetwork(t *testing.T) {
	f, srv := setupAPIFixture(t)
	f.setAccessOnly(t, "stale-access")

	err := f.client.RefreshToken(context.Background())
	require.ErrorIs(t, err, client.ErrNoRefreshToken)

	require.Equal(t, 0, srv.TotalCalls())
	f.requireTerminated(t)
}

func TestRefreshToken_StoresNewAccessToken(t *testing.T) {
	var (
		mu                        sync.Mutex
		seen                      apimodel.RefreshRequest
		method, path, contentType string
	)
	f, _ := setupStubFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		method, path = r.Method, r.URL.Path
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&seen)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access": "X"}`)
	}))
	f.store(t, session.Credentials{AccessToken: "old", RefreshToken: "r1"})

	require.NoError(t, f.client.RefreshToken(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "/api/refresh/", path)
	require.Equal(t, "r1", seen.Refresh)
	require.Equal(t, "application/json", contentType)

	access, ok := f.storedValue(t, storage.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "X", access)

	cookie, ok := f.mirror.AccessCookie()
	require.True(t, ok)
	require.Equal(t, "X", cookie)

	refresh, ok := f.storedValue(t, storage.KeyRefreshToken)
	require.True(t, ok)
	require.Equal(t, "r1", refresh)
	require.Empty(t, f.nav.Navigations())
}

func TestRefreshToken_RejectedTerminates(t *testing.T) {
	f, srv := setupAPIFixture(t)
	creds := srv.IssueTokens(testUsername)
	f.store(t, creds)
	srv.FailRefresh(http.StatusUnauthorized)

	err := f.client.RefreshToken(context.Background())
	require.ErrorIs(t, err, client.ErrRefreshRejected)
	require.Contains(t, err.Error(), "401")

	f.requireTerminated(t)
	require.Equal(t, 1, srv.Calls(authtest.RouteRefresh))
	require.Equal(t, 1, srv.Calls(authtest.RouteLogout))
	require.True(t, srv.IsBlacklisted(creds.RefreshToken))
}

func TestRefreshToken_ServerErrorTerminates(t *testing.T) {
	f, srv := setupAPIFixture(t)
	f.store(t, srv.IssueTokens(testUsername))
	srv.FailRefresh(http.StatusInternalServerError)

	err := f.client.RefreshToken(context.Background())
	require.ErrorIs(t, err, client.ErrRefreshRejected)
	f.requireTerminated(t)
}

func TestRefreshToken_BlacklistedTokenTerminates(t *testing.T) {
	f, srv := setupAPIFixture(t)
	creds := srv.IssueTokens(testUsername)
	f.store(t, creds)

	// another device logged the same refresh token out
	other := newFixture(t, srv.URL)
	other.store(t, creds)
	require.NoError(t, other.client.Logout(context.Background()))

	err := f.client.RefreshToken(context.Background())
	require.ErrorIs(t, err, client.ErrRefreshRejected)
	f.requireTerminated(t)
}

func TestRefreshToken_SuccessWithoutAccessTerminates(t *testing.T) {
	f, _ := setupStubFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	}))
	f.store(t, session.Credentials{AccessToken: "old", RefreshToken: "r1"})

	err := f.client.RefreshToken(context.Background())
	require.ErrorIs(t, err, client.ErrRefreshRejected)
	f.requireTerminated(t)
}

func TestRefreshToken_TransportErrorKeepsSession(t *testing.T) {
	f, srv := setupStubFixture(t, http.NotFoundHandler())
	f.store(t, session.Credentials{AccessToken: "old", RefreshToken: "r1"})
	srv.Close()

	err := f.client.RefreshToken(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, client.ErrRefreshRejected)

	access, ok := f.storedValue(t, storage.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "old", access)
	require.Empty(t, f.nav.Navigations())
}

func TestRefreshToken_NoRetry(t *testing.T) {
	var calls atomic.Int32
	f, _ := setupStubFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/refresh/" {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	f.store(t, session.Credentials{AccessToken: "old", RefreshToken: "r1"})

	require.Error(t, f.client.RefreshToken(context.Background()))
	require.Equal(t, int32(1), calls.Load())
}
