package session

import (
	"context"
	"fmt"

	autherrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"github.com/jrsteele09/go-auth-session/storage"
)

// Credentials is the token pair issued at login.
type Credentials struct {
	AccessToken  string // Short-lived, authorizes individual API calls
	RefreshToken string // Longer-lived, exchanged for a new access token
}

// Session is the client's view of the current login: the credentials kept in
// persistent storage plus the access cookie that mirrors the access token.
// It holds no state of its own, so several Sessions over the same storage
// observe each other's writes.
type Session struct {
	repo    storage.Repo
	cookies CookieMirror
}

// New creates a Session over repo. cookies may be nil when nothing needs the
// access cookie.
func New(repo storage.Repo, cookies CookieMirror) *Session {
	if cookies == nil {
		cookies = noCookies{}
	}
	return &Session{
		repo:    repo,
		cookies: cookies,
	}
}

// AccessToken returns the stored access token. An empty value counts as absent.
func (s *Session) AccessToken(ctx context.Context) (string, bool, error) {
	return s.get(ctx, storage.KeyAccessToken)
}

// RefreshToken returns the stored refresh token. An empty value counts as absent.
func (s *Session) RefreshToken(ctx context.Context) (string, bool, error) {
	return s.get(ctx, storage.KeyRefreshToken)
}

func (s *Session) get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, autherrors.Wrapf(err, "Session.get %s", key)
	}
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// SetAccessToken stores a refreshed access token and updates the access cookie.
func (s *Session) SetAccessToken(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, storage.KeyAccessToken, token); err != nil {
		return autherrors.Wrapf(err, "Session.SetAccessToken")
	}
	s.cookies.SetAccessCookie(token)
	return nil
}

// Store saves a full credential pair, as returned by a login.
func (s *Session) Store(ctx context.Context, creds Credentials) error {
	if creds.AccessToken == "" || creds.RefreshToken == "" {
		return fmt.Errorf("Session.Store: %w", autherrors.ErrMalformedToken)
	}
	if err := s.repo.Set(ctx, storage.KeyRefreshToken, creds.RefreshToken); err != nil {
		return autherrors.Wrapf(err, "Session.Store refresh")
	}
	return s.SetAccessToken(ctx, creds.AccessToken)
}

// Clear removes all stored session state and expires the access cookie. The
// cookie is expired even when clearing storage fails.
func (s *Session) Clear(ctx context.Context) error {
	err := s.repo.Clear(ctx)
	s.cookies.ExpireAccessCookie()
	if err != nil {
		return autherrors.Wrapf(err, "Session.Clear")
	}
	return nil
}

// Claims decodes the stored access token. The signature is not checked; the
// client has no key and the server remains the authority.
func (s *Session) Claims(ctx context.Context) (*Claims, error) {
	token, ok, err := s.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, autherrors.ErrNoAccessToken
	}
	return ParseClaims(token)
}
