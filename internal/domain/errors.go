package domain

import "errors"

var (
	ErrAuthenticationFailure = errors.New("invalid credentials")
	ErrTokenInvalid          = errors.New("token invalid or expired")
	ErrIdentityNotFound      = errors.New("identity not found")
	ErrAccessDenied          = errors.New("forbidden")
	ErrNotFound              = errors.New("not found")
	ErrValidationConflict    = errors.New("validation failed")
	ErrSelfDeletion          = errors.New("cannot delete own account")
)
