package http

import "errors"

// ErrNotAuthorized is the single error the authorization gate reports.
// Missing token, malformed token, bad signature, wrong issuer and expiry
// all collapse into it so a probing client learns nothing about which
// check failed.
var ErrNotAuthorized = errors.New("you are not authorized to access this route")

// Validation errors for decoded request payloads. Matched with [errors.Is]
// in the status mapper; all of them translate to 400.
var (
	ErrValidationUsername = errors.New("username must be between 3 and 20 characters")
	ErrValidationPassword = errors.New("password must be between 6 and 30 characters")
	ErrValidationTaskName = errors.New("task name is required and must be at most 255 characters")
	ErrValidationStage    = errors.New("stage must be one of TODO, DOING, DONE")
	ErrValidationTaskID   = errors.New("task id must be a positive integer")
)
