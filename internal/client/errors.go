package client

import "errors"

var (
	// ErrInvalidCredentials means the service rejected the account
	// email/password outright. Fatal, never retried.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTransientAuth covers network and server-side failures during
	// login. The single re-login pass may cure it.
	ErrTransientAuth = errors.New("transient authentication failure")

	// ErrReauthFailed means a request was rejected as unauthorized and
	// the single re-login attempt (or the retried request) also failed.
	ErrReauthFailed = errors.New("re-authentication failed")

	// ErrNotAuthenticated means an authenticated call was made before
	// Login or RestoreSession.
	ErrNotAuthenticated = errors.New("not authenticated")
)
