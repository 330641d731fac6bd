package client

import "errors"

var (
	// ErrAuthenticationRequired is returned for every 401 answer, after the
	// credentials were cleared and the login page was requested.
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNoRefreshToken         = errors.New("no refresh token available")
	ErrUnexpectedContentType  = errors.New("unexpected response content type")
)
