package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/jrsteele09/go-auth-session/authtest"
	"github.com/jrsteele09/go-auth-session/client"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCommand()
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{"sessionctl"}, args...))
	return out.String(), err
}

func TestCLI_SessionLifecycle(t *testing.T) {
	srv := authtest.NewServer(t, authtest.WithUser(authtest.User{
		ID:       "1",
		Username: "luis",
		Password: "pw",
		Email:    "luis@example.com",
		Role:     "tecnico",
	}))

	t.Setenv("BASE_URL", srv.URL)
	t.Setenv("STORAGE_BACKEND", "bolt")
	t.Setenv("DATA_FOLDER", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCLI(t, "login", "--username", "luis", "--password", "pw")
	require.NoError(t, err)
	require.Contains(t, out, "signed in as luis (tecnico)")

	// each invocation reopens the bolt file, so the session persisted
	out, err = runCLI(t, "get", authtest.RouteIncidents)
	require.NoError(t, err)
	require.Contains(t, out, "200 OK")
	require.Contains(t, out, `"user":"luis"`)

	out, err = runCLI(t, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, "luis@example.com")

	out, err = runCLI(t, "refresh")
	require.NoError(t, err)
	require.Contains(t, out, "access token refreshed")
	require.Equal(t, 1, srv.Calls(authtest.RouteRefresh))

	_, err = runCLI(t, "logout")
	require.NoError(t, err)
	require.Equal(t, 1, srv.Calls(authtest.RouteLogout))

	_, err = runCLI(t, "get", authtest.RouteIncidents)
	require.ErrorIs(t, err, client.ErrNoAccessToken)
}

func TestCLI_GetRequiresPath(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")

	_, err := runCLI(t, "get")
	require.Error(t, err)
}

func TestCLI_BadBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")

	_, err := runCLI(t, "whoami")
	require.Error(t, err)
}
