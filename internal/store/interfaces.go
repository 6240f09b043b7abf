package store

import (
	"context"

	"github.com/MKhiriev/go-secmsg-directory/models"
)

// Directory is the process-wide mapping of handle to registered user.
//
// Every method runs as one critical section: a caller never observes a
// partially inserted record, and concurrent registrations of one handle
// resolve to exactly one winner.
type Directory interface {
	// Register inserts user if its handle is free and returns the stored
	// record, or ErrHandleInUse.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login returns the record for handle if credential matches it, or
	// ErrNoUserWasFound / ErrWrongCredential.
	Login(ctx context.Context, handle, credential string) (models.User, error)

	// LookupForConnect returns the record for handle together with up to
	// relays other records in registration order, or ErrTargetNotFound.
	LookupForConnect(ctx context.Context, handle string, relays int) (models.User, []models.User, error)

	// Len returns the number of registered handles.
	Len(ctx context.Context) int
}
