package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyHandle  = errors.New("handle is required")
	ErrEmptyAddress = errors.New("address is required")
)
