package question

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("question not found")
	ErrPersistence   = errors.New("persistence failed")
	ErrInvalidFormat = errors.New("invalid questions format")
	ErrConfiguration = errors.New("sync is not configured")
	ErrOffline       = errors.New("no connection")
	ErrTransport     = errors.New("remote call failed")
	ErrUnavailable   = errors.New("media bytes unavailable")
)
