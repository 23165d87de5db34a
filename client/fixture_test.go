package client_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-auth-session/authtest"
	"github.com/jrsteele09/go-auth-session/client"
	"github.com/jrsteele09/go-auth-session/session"
	"github.com/jrsteele09/go-auth-session/storage"
	"github.com/jrsteele09/go-auth-session/storage/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/publicsuffix"
)

const (
	testUsername = "ana"
	testPassword = "s3cret"
	testEmail    = "ana@example.com"
	testRole     = "supervisor"
)

var testUser = authtest.User{
	ID:       "7",
	Username: testUsername,
	Password: testPassword,
	Email:    testEmail,
	Role:     testRole,
}

// testFixture holds a client wired to in-memory storage, a real cookie jar and
// a navigation recorder.
type testFixture struct {
	repo   *memory.InMemoryRepo
	mirror *session.JarMirror
	nav    *authtest.NavigationRecorder
	client *client.Client
}

func newFixture(t *testing.T, baseURL string) *testFixture {
	t.Helper()

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	require.NoError(t, err)
	u, err := url.Parse(baseURL)
	require.NoError(t, err)

	repo := memory.NewInMemoryRepo()
	mirror := session.NewJarMirror(jar, u, "")
	nav := &authtest.NavigationRecorder{}

	c, err := client.New(baseURL, session.New(repo, mirror),
		client.WithHTTPClient(&http.Client{Jar: jar}),
		client.WithNavigator(nav),
		client.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	return &testFixture{
		repo:   repo,
		mirror: mirror,
		nav:    nav,
		client: c,
	}
}

// setupAPIFixture runs the client against the fake incidents API.
func setupAPIFixture(t *testing.T, options ...authtest.Option) (*testFixture, *authtest.Server) {
	t.Helper()

	srv := authtest.NewServer(t, append([]authtest.Option{authtest.WithUser(testUser)}, options...)...)
	return newFixture(t, srv.URL), srv
}

// setupStubFixture runs the client against a hand-written handler.
func setupStubFixture(t *testing.T, handler http.Handler) (*testFixture, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newFixture(t, srv.URL), srv
}

func (f *testFixture) store(t *testing.T, creds session.Credentials) {
	t.Helper()
	require.NoError(t, f.client.Session().Store(context.Background(), creds))
}

func (f *testFixture) storedValue(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, ok, err := f.repo.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

// requireTerminated checks the session was ended: storage empty, cookie gone,
// and a history-replacing redirect to the entry page.
func (f *testFixture) requireTerminated(t *testing.T) {
	t.Helper()

	require.Equal(t, 0, f.repo.Len())
	_, ok := f.mirror.AccessCookie()
	require.False(t, ok, "access cookie should be expired")
	require.Equal(t, []authtest.Navigation{{Path: "/", Replace: true}}, f.nav.Navigations())
}

// setAccessOnly stores an access token with no refresh token next to it.
func (f *testFixture) setAccessOnly(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, f.repo.Set(context.Background(), storage.KeyAccessToken, token))
	f.mirror.SetAccessCookie(token)
}
