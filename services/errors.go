package services

import (
	"errors"

	"swear-jar/store"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrWindowClosed = errors.New("the jar is closed right now")

	ErrParticipantNotFound = store.ErrNotFound
	ErrStoreUnavailable    = store.ErrUnavailable
	ErrOperationFailed     = store.ErrFailed
)
