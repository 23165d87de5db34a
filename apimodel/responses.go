package apimodel

import "github.com/jrsteele09/go-auth-session/session"

// TokenPair is the pair of tokens issued at login.
type TokenPair struct {
	// Access authorizes API calls.
	// Usage: "Authorization: Bearer <access>"
	// Lifespan: short (minutes)
	Access string `json:"access"`

	// Refresh is exchanged at the refresh endpoint for a new access token.
	// Lifespan: long (days); invalidated by logout
	Refresh string `json:"refresh"`
}

// Credentials converts the pair into the form the session stores.
func (p TokenPair) Credentials() session.Credentials {
	return session.Credentials{
		AccessToken:  p.Access,
		RefreshToken: p.Refresh,
	}
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User   string    `json:"user"` // Username
	Role   string    `json:"rol"`  // Role name; empty when the user has no profile
	Tokens TokenPair `json:"tokens"`
}

// RefreshResponse is returned by a successful refresh. Only the access token
// is replaced; the refresh token stays the same.
type RefreshResponse struct {
	Access string `json:"access"`
}

// ErrorResponse is the body the API sends with most 4xx answers.
type ErrorResponse struct {
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Message returns whichever of the two fields is set.
func (e ErrorResponse) Message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}
