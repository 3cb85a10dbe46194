package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when an operation receives empty or
	// structurally invalid input (e.g. a blank username or password).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned by Login when the supplied password does
	// not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenCreationFailed wraps failures while signing a new token.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrInvalidToken is the single error kind observed by callers for every
	// token verification failure: expired, malformed, wrong signature, or
	// wrong issuer. Collapsing them avoids leaking which check failed.
	ErrInvalidToken = errors.New("token is expired or invalid")

	// ErrNotResourceOwner is returned when an authenticated requester
	// attempts to act on a resource owned by a different user.
	ErrNotResourceOwner = errors.New("requester is not the resource owner")
)
