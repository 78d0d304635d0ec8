package blink

import (
	"errors"

	"blink-cli/internal/client"
)

var (
	// ErrNoOnboardedNetwork means discovery found no network eligible
	// to become a sync module. Fatal: there is nothing to refresh.
	ErrNoOnboardedNetwork = errors.New("no onboarded network on account")

	// ErrRefreshInFlight means Refresh was called while a cycle was
	// already running. Cycles never interleave.
	ErrRefreshInFlight = errors.New("refresh already in flight")
)

// Re-exported client sentinels so library consumers only need this
// package for errors.Is checks.
var (
	ErrInvalidCredentials = client.ErrInvalidCredentials
	ErrReauthFailed       = client.ErrReauthFailed
	ErrTransientAuth      = client.ErrTransientAuth
)

// authFailure reports whether err must abort a refresh cycle outright.
// Field-level failures never do; a dead session always does.
func authFailure(err error) bool {
	return errors.Is(err, client.ErrReauthFailed) ||
		errors.Is(err, client.ErrInvalidCredentials) ||
		errors.Is(err, client.ErrNotAuthenticated)
}
