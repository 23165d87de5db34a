package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-auth-session/apimodel"
)

// RefreshToken exchanges the stored refresh token for a new access token.
//
// Without a refresh token, or when the server refuses the exchange, the
// session is ended through Logout and ErrNoRefreshToken or ErrRefreshRejected
// is returned. A transport error is returned as is and leaves the session
// alone. Nothing is retried.
func (c *Client) RefreshToken(ctx context.Context) error {
	refresh, ok, err := c.session.RefreshToken(ctx)
	if err != nil {
		return err
	}
	if !ok {
		c.logger.Info().Msg("no refresh token, ending session")
		return c.terminate(ctx, ErrNoRefreshToken)
	}

	resp, err := c.postJSON(ctx, c.endpoints.Refresh, apimodel.RefreshRequest{Refresh: refresh})
	if err != nil {
		return fmt.Errorf("Client.RefreshToken: %w", err)
	}
	defer discard(resp)

	if !isSuccess(resp.StatusCode) {
		msg := errorMessage(resp)
		c.logger.Warn().Int("status", resp.StatusCode).Str("error", msg).Msg("refresh rejected, ending session")
		return c.terminate(ctx, fmt.Errorf("%w: status %d", ErrRefreshRejected, resp.StatusCode))
	}

	var out apimodel.RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Access == "" {
		c.logger.Warn().AnErr("decode", err).Msg("refresh response carried no access token, ending session")
		return c.terminate(ctx, fmt.Errorf("%w: no access token in response", ErrRefreshRejected))
	}

	if err := c.session.SetAccessToken(ctx, out.Access); err != nil {
		return err
	}
	c.logger.Debug().Msg("access token refreshed")
	return nil
}

// terminate ends the session and reports cause, plus any failure to clear
// local state.
func (c *Client) terminate(ctx context.Context, cause error) error {
	if err := c.Logout(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}
