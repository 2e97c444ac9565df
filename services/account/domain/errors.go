// Package domain defines core types and errors for the account bounded context.
package domain

import "errors"

// ErrEmailNotAllowed indicates the authenticated Google account's email is
// not on the configured allowlist.
var ErrEmailNotAllowed = errors.New("account is not allowed to sign in")
