package service

import (
	"context"

	"github.com/MKhiriev/go-secmsg-directory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/directory_service_mock.go -package=mock

// DirectoryService implements the directory operations behind the
// dispatcher. Implementations must be safe for concurrent use.
type DirectoryService interface {
	// Register stores user (handle, credential, observed address, key) and
	// returns the public view of the stored record.
	Register(ctx context.Context, user models.User) (models.UserView, error)

	// Login authenticates user.Handle with user.Credential. The returned
	// view carries the stored key and the requester's observed address
	// (user.Address) in place of the stored one.
	Login(ctx context.Context, user models.User) (models.UserView, error)

	// Connect builds the relay route to target.
	Connect(ctx context.Context, target string) (models.Route, error)

	// PublicKey returns the server long-lived public key.
	PublicKey(ctx context.Context) models.Key

	// Stats summarizes the directory for the admin endpoint and metrics.
	Stats(ctx context.Context) models.DirectoryStats
}
