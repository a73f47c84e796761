package errors

import "errors"

var (
	ErrUnauthorized       = errors.New("caller lacks required authority")
	ErrMissingActor       = errors.New("actor id is required")
	ErrMissingReason      = errors.New("reason is required")
	ErrMissingSector      = errors.New("sector id is required")
	ErrUnknownRole        = errors.New("unknown role tag")
	ErrSectorNotFound     = errors.New("sector not found")
	ErrLockdownActive     = errors.New("global lockdown already active")
	ErrLockdownNotActive  = errors.New("global lockdown is not active")
	ErrRoleAlreadyGranted = errors.New("role already granted")
	ErrRoleNotGranted     = errors.New("role not granted")
)
