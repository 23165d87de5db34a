package client

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-auth-session/apimodel"
)

// Logout ends the session. When a refresh token is stored the server is told
// to invalidate it first; that call is best effort and its outcome never
// changes what happens next. Local state is then cleared unconditionally and
// the user is sent to the entry page with a history replace.
//
// The returned error only reports a failure to clear local storage.
func (c *Client) Logout(ctx context.Context) error {
	c.logger.Info().Msg("logout executed")

	refresh, ok, err := c.session.RefreshToken(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("could not read refresh token, clearing session anyway")
	}
	if ok {
		// best effort: the session is cleared whatever the server says
		_ = c.notifyLogout(ctx, refresh)
	}

	clearErr := c.session.Clear(ctx)
	if clearErr != nil {
		c.logger.Err(clearErr).Msg("failed to clear session storage")
	}

	c.navigator.Replace(ctx, c.endpoints.Entry)
	return clearErr
}

// notifyLogout asks the server to invalidate refresh. Failures are logged and
// returned only so tests can observe them.
func (c *Client) notifyLogout(ctx context.Context, refresh string) error {
	resp, err := c.postJSON(ctx, c.endpoints.Logout, apimodel.RefreshRequest{Refresh: refresh})
	if err != nil {
		c.logger.Warn().Err(err).Msg("logout notification failed")
		return err
	}
	defer discard(resp)

	if !isSuccess(resp.StatusCode) {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("server did not accept logout")
		return fmt.Errorf("%w: logout status %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
