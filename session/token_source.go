package session

import (
	"context"

	autherrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"golang.org/x/oauth2"
)

// TokenSource exposes the stored credentials as an oauth2.TokenSource. Each
// call to Token reads storage again, so refreshes done elsewhere are picked up.
// It never refreshes by itself.
func (s *Session) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &storedTokenSource{ctx: ctx, session: s}
}

type storedTokenSource struct {
	ctx     context.Context
	session *Session
}

func (ts *storedTokenSource) Token() (*oauth2.Token, error) {
	access, ok, err := ts.session.AccessToken(ts.ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, autherrors.ErrNoAccessToken
	}

	refresh, _, err := ts.session.RefreshToken(ts.ctx)
	if err != nil {
		return nil, err
	}

	tok := &oauth2.Token{
		AccessToken:  access,
		TokenType:    "Bearer",
		RefreshToken: refresh,
	}
	// Opaque tokens are still usable, they just carry no expiry.
	if claims, err := ParseClaims(access); err == nil && claims.ExpiresAt != nil {
		tok.Expiry = claims.ExpiresAt.Time
	}
	return tok, nil
}
