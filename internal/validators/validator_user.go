package validators

import (
	"context"

	"github.com/MKhiriev/go-secmsg-directory/models"
)

// Field names accepted by the user validator.
const (
	// FieldHandle targets the user handle.
	FieldHandle = "handle"

	// FieldAddress targets the observed peer address.
	FieldAddress = "address"
)

type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate checks a models.User. With no fields every known field is
// checked.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldHandle, FieldAddress}
	}

	for _, f := range fields {
		switch f {
		case FieldHandle:
			if user.Handle == "" {
				return ErrEmptyHandle
			}
		case FieldAddress:
			if user.Address == "" {
				return ErrEmptyAddress
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
