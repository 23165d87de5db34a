package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// RequestIDHeader carries an id shared by a request and its retry.
const RequestIDHeader = "X-Request-ID"

// Do sends req with the stored access token.
//
// With no access token the user is sent to the entry page and Do returns
// ErrNoAccessToken without touching the network. If the server answers 401
// the token is refreshed and the request is sent exactly once more; the
// response to that second attempt is returned whatever its status. When the
// refresh ends the session, the refresh error is returned instead.
//
// Caller headers are kept, but Authorization and Content-Type are always set
// by the client. The request body is read up front so it can be replayed.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, ok, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		c.navigator.Navigate(ctx, c.endpoints.Entry)
		return nil, ErrNoAccessToken
	}

	body, err := bufferBody(req)
	if err != nil {
		return nil, err
	}

	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	resp, err := c.send(req, body, token, requestID)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	discard(resp)

	c.logger.Debug().Str("request_id", requestID).Str("url", req.URL.String()).Msg("unauthorized, refreshing access token")
	if err := c.RefreshToken(ctx); err != nil {
		return nil, err
	}

	token, ok, err = c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		// cleared by a logout that raced the refresh
		return nil, ErrNoAccessToken
	}

	return c.send(req, body, token, requestID)
}

// send issues one attempt of req on a copy, leaving the caller's request as is.
func (c *Client) send(req *http.Request, body []byte, token, requestID string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	if body != nil {
		out.Body = io.NopCloser(bytes.NewReader(body))
		out.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		out.ContentLength = int64(len(body))
	}

	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
	out.Header.Set("Content-Type", contentTypeJSON)
	out.Header.Set(RequestIDHeader, requestID)

	return c.httpClient.Do(out)
}

func bufferBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return body, nil
}

// NewRequest builds a request for path, relative to the base URL. A non-nil
// body is sent as JSON.
func (c *Client) NewRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	target, err := c.URL(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}
	return req, nil
}

// Get fetches path through Do.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Post sends body as JSON to path through Do.
func (c *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Transport returns an http.RoundTripper that sends every request through Do.
// Do not install it in the client's own http.Client; Do would call itself.
func (c *Client) Transport() http.RoundTripper {
	return roundTripperFunc(c.Do)
}

// HTTPClient returns an http.Client whose requests go through Do. It has no
// cookie jar of its own: cookies are added by the underlying client.
func (c *Client) HTTPClient() *http.Client {
	return &http.Client{Transport: c.Transport()}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
