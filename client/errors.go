package client

import autherrors "github.com/jrsteele09/go-auth-session/internal/errors"

// Errors returned by the client. Test with errors.Is.
var (
	ErrNoAccessToken      = autherrors.ErrNoAccessToken
	ErrNoRefreshToken     = autherrors.ErrNoRefreshToken
	ErrRefreshRejected    = autherrors.ErrRefreshRejected
	ErrInvalidCredentials = autherrors.ErrInvalidCredentials
	ErrUnexpectedStatus   = autherrors.ErrUnexpectedStatus
	ErrMalformedToken     = autherrors.ErrMalformedToken
)
