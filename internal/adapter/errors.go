package adapter

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-secmsg-directory/internal/app"
)

var (
	ErrUsernameInUse     = errors.New("username already in use")
	ErrUserNotFound      = errors.New("user does not exist")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrTargetNotFound    = errors.New("connection target not found")
	ErrInvalidData       = errors.New("invalid data provided")

	// ErrUnexpectedResponse is returned when the server answers with a
	// message that does not fit the request.
	ErrUnexpectedResponse = errors.New("unexpected server response")
)

// ResponseError is an error outcome delivered by the server.
type ResponseError struct {
	Message string
}

func (e *ResponseError) Error() string {
	return "server: " + e.Message
}

// Is maps the server's messages onto this package's sentinels.
func (e *ResponseError) Is(target error) bool {
	switch {
	case e.Message == app.MsgUsernameInUse:
		return target == ErrUsernameInUse
	case e.Message == app.MsgUserDoesNotExist:
		return target == ErrUserNotFound
	case e.Message == app.MsgIncorrectPassword:
		return target == ErrIncorrectPassword
	case e.Message == app.MsgInvalidDataProvided:
		return target == ErrInvalidData
	case strings.HasPrefix(e.Message, app.MsgTargetNotFoundPrefix):
		return target == ErrTargetNotFound
	default:
		return false
	}
}
