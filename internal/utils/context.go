// Package utils provides general-purpose helper utilities used across the
// directory server: context keys, connection identifiers, keyed hashing and
// peer address derivation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ConnIDCtxKey is the key used to store the identifier of the connection
// being served in the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.ConnIDCtxKey, "0190c8e2-...")
var ConnIDCtxKey = contextKey("connID")

// WithConnID returns a copy of ctx carrying connID.
func WithConnID(ctx context.Context, connID string) context.Context {
	return context.WithValue(ctx, ConnIDCtxKey, connID)
}

// GetConnIDFromContext retrieves the connection identifier from the context.
//
// Returns the identifier and an ok flag:
//   - ok == true: value is found and is a string
//   - ok == false: value is missing or has an unexpected type
func GetConnIDFromContext(ctx context.Context) (string, bool) {
	connID, ok := ctx.Value(ConnIDCtxKey).(string)
	return connID, ok
}
