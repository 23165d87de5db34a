package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	autherrors "github.com/jrsteele09/go-auth-session/internal/errors"
)

// Claims are the fields the backend puts into every access token. Besides the
// registered claims it adds the user's email and role.
type Claims struct {
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	UserID any    `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes raw without verifying its signature.
func ParseClaims(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", autherrors.ErrMalformedToken, err)
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is at or before now. Tokens
// without exp never expire.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}
