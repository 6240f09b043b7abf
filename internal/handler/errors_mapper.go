package handler

import (
	"errors"

	"github.com/MKhiriev/go-secmsg-directory/internal/app"
	"github.com/MKhiriev/go-secmsg-directory/internal/service"
	"github.com/MKhiriev/go-secmsg-directory/internal/store"
)

var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided: app.MsgInvalidDataProvided,

	store.ErrHandleInUse:     app.MsgUsernameInUse,
	store.ErrNoUserWasFound:  app.MsgUserDoesNotExist,
	store.ErrWrongCredential: app.MsgIncorrectPassword,
}

// messageFromError converts a recoverable directory error into the text
// delivered to the peer. ok is false for any other error, which must abort
// the connection instead.
func messageFromError(err error, target string) (string, bool) {
	if errors.Is(err, store.ErrTargetNotFound) {
		return app.TargetNotFound(target), true
	}

	for sentinel, message := range errorMessageMap {
		if errors.Is(err, sentinel) {
			return message, true
		}
	}
	return "", false
}
