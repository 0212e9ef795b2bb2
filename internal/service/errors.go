package service

import "errors"

// Failures surfaced to handlers. Credential and account-state problems are
// deliberately flattened into one error so responses never reveal which
// check failed.
var (
    ErrInvalidCredentials = errors.New("invalid email or password")
    ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
    ErrPasswordRequired   = errors.New("new password is required")
    ErrInvalidLink        = errors.New("reset link is invalid or has expired")
    ErrPasswordDisabled   = errors.New("password login is disabled for this account")
)
