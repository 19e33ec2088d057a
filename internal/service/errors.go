package service

import "errors"

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid status transition")
	ErrInactiveReference  = errors.New("referenced record is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
