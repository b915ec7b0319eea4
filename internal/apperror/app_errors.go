package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("stored session has no game")
	ErrInvalidCell     = errors.New("cell must be a number")
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownStorage  = errors.New("unknown storage")
)
