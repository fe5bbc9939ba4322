// Package errors contains a common error definition for the library.
package errors

import (
	"errors"
	"fmt"
)

type ErrorKind uint

const (
	TransportErrorKind ErrorKind = iota
	ResponseErrorKind
	SheetErrorKind
	ReleaseErrorKind
	ConfigErrorKind
)

var (
	ErrNotFound = errors.New("not found")

	// Generic non-success signal used when no underlying error exists.
	ErrFetchFailed = errors.New("fetch failed")

	// Datasheet errors
	ErrParseSheet = errors.New("cannot parse datasheet")

	// Release index errors
	ErrParseTags = errors.New("cannot parse tag data")

	// Config errors
	ErrMissingEnv = errors.New("missing environment variable")
	ErrInvalidEnv = errors.New("invalid environment variable")
)

type Error struct {
	kind   ErrorKind
	source error
}

func (e *Error) Error() string {
	var kind string
	switch e.kind {
	case TransportErrorKind:
		kind = "transport error"
	case ResponseErrorKind:
		kind = "response error"
	case SheetErrorKind:
		kind = "datasheet error"
	case ReleaseErrorKind:
		kind = "release error"
	case ConfigErrorKind:
		kind = "config error"
	default:
		kind = "unknown error"
	}
	return fmt.Sprintf("%s: %s", kind, e.source)
}

func (e *Error) Kind() ErrorKind {
	return e.kind
}

func NewTransportErr(src error) *Error {
	return &Error{kind: TransportErrorKind, source: src}
}

func NewResponseErr(src error) *Error {
	return &Error{kind: ResponseErrorKind, source: src}
}

func NewSheetErr(src error) *Error {
	return &Error{kind: SheetErrorKind, source: src}
}

func NewReleaseErr(src error) *Error {
	return &Error{kind: ReleaseErrorKind, source: src}
}

func NewConfigErr(src error) *Error {
	return &Error{kind: ConfigErrorKind, source: src}
}

func (e *Error) Is(other error) bool {
	return e == other || errors.Is(e.source, other)
}

func (e *Error) Unwrap() error {
	return e.source
}
