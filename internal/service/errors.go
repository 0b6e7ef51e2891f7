// Package service provides business logic for the application.
package service

import "errors"

// Domain errors returned by the use cases. The HTTP layer maps each of
// these to a fixed status code; anything else becomes a 500.
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrMaxDistance           = errors.New("gym is too far away")
	ErrMaxNumberOfCheckIns   = errors.New("max number of check-ins reached for the day")
	ErrLateCheckInValidation = errors.New("check-in can no longer be validated")
	ErrInvalidCoordinates    = errors.New("invalid coordinates")
	ErrMissingRequiredField  = errors.New("missing required field")
)
