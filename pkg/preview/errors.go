package preview

import (
	"errors"
	"fmt"
)

// Failure kinds reported by the preview service.
var (
	ErrItemNotFound   = errors.New("item not found")
	ErrValidation     = errors.New("validation error")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
)

// Preconditions checked before a request is sent.
var (
	ErrMissingOwnerID = errors.New("file owner id is required for downloads")
	ErrNilBlob        = errors.New("blob reader cannot be nil")
	ErrEmptyFileName  = errors.New("file name cannot be empty")
	ErrInvalidQuery   = errors.New("invalid query")
)

// Error is returned for every failed exchange with the service. Kind is one
// of ErrItemNotFound, ErrValidation, ErrBadRequest or ErrInternalServer.
type Error struct {
	Op         string
	Kind       error
	StatusCode int // zero when no status was received
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is matches the failure kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Cause }

// KindOf returns the failure kind carried by err, or nil.
func KindOf(err error) error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return nil
}
