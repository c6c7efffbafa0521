package services

import "errors"

// Service error taxonomy. Handlers translate these into HTTP statuses; the
// websocket layer reports them back on the offending connection.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidSender = errors.New("invalid sender")
	ErrForbidden     = errors.New("forbidden")
	ErrUnauthorized  = errors.New("unauthorized")
)
