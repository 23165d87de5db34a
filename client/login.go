package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-auth-session/apimodel"
	"github.com/jrsteele09/go-auth-session/session"
)

// Login posts the user's credentials and stores the returned token pair,
// replacing whatever session was stored before.
func (c *Client) Login(ctx context.Context, username, password string) (*apimodel.LoginResponse, error) {
	resp, err := c.postJSON(ctx, c.endpoints.Login, apimodel.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("Client.Login: %w", err)
	}
	defer discard(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, errorMessage(resp))
	case !isSuccess(resp.StatusCode):
		return nil, fmt.Errorf("%w: login status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var out apimodel.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	if err := c.session.Store(ctx, out.Tokens.Credentials()); err != nil {
		return nil, err
	}

	c.logger.Info().Str("user", out.User).Str("role", out.Role).Msg("logged in")
	return &out, nil
}

// Whoami returns the claims of the stored access token. It makes no network
// call and does not redirect when there is no session.
func (c *Client) Whoami(ctx context.Context) (*session.Claims, error) {
	return c.session.Claims(ctx)
}
