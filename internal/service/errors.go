package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a record to register has no
	// peer address.
	ErrInvalidDataProvided = errors.New("invalid data provided")
)
