package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-auth-session/apimodel"
	"github.com/jrsteele09/go-auth-session/internal/config"
	"github.com/jrsteele09/go-auth-session/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

// Endpoints are the API paths the client talks to, relative to the base URL.
type Endpoints struct {
	Login   string
	Refresh string
	Logout  string
	Entry   string // Page the user is sent to when there is no session
}

// DefaultEndpoints returns the paths served by the incidents API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:   "/api/login/",
		Refresh: "/api/refresh/",
		Logout:  "/api/logout/",
		Entry:   "/",
	}
}

// EndpointsFromConfig reads the endpoint paths from cfg.
func EndpointsFromConfig(cfg config.ClientConfig) Endpoints {
	return Endpoints{
		Login:   cfg.GetLoginPath(),
		Refresh: cfg.GetRefreshPath(),
		Logout:  cfg.GetLogoutPath(),
		Entry:   cfg.GetEntryPath(),
	}
}

// Client keeps a user's API session alive: it attaches the access token to
// requests, refreshes it when the server answers 401 and tears the session
// down on logout.
//
// Concurrent calls are not coordinated. Two requests that both get a 401 will
// each run their own refresh.
type Client struct {
	baseURL    *url.URL
	endpoints  Endpoints
	httpClient *http.Client
	session    *session.Session
	navigator  Navigator
	logger     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the client used for all network calls. Give it the same
// cookie jar as the session's JarMirror so the access cookie is sent.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithEndpoints(endpoints Endpoints) Option {
	return func(c *Client) {
		c.endpoints = endpoints
	}
}

func WithNavigator(navigator Navigator) Option {
	return func(c *Client) {
		c.navigator = navigator
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the API at baseURL backed by sess.
func New(baseURL string, sess *session.Session, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}

	c := &Client{
		baseURL:   u,
		endpoints: DefaultEndpoints(),
		session:   sess,
		logger:    log.Logger,
	}

	for _, opt := range options {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	c.logger = c.logger.With().Str("component", "session-client").Logger()
	if c.navigator == nil {
		c.navigator = LogNavigator(c.logger)
	}

	return c, nil
}

// Session returns the session the client maintains.
func (c *Client) Session() *session.Session {
	return c.session
}

// URL resolves path against the base URL. Absolute URLs are returned as is.
func (c *Client) URL(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("url.Parse %q: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// postJSON sends body to path without any authorization header. Used for the
// session endpoints themselves, which must not go through the 401 retry.
func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	target, err := c.URL(path)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// errorMessage reads the API's error body, if it has one.
func errorMessage(resp *http.Response) string {
	var e apimodel.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e); err != nil {
		return ""
	}
	return e.Message()
}

// discard drains and closes a response body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
