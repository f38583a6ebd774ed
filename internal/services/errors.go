package services

import "errors"

// ErrorKind classifies a service failure. The kind travels losslessly to the
// HTTP layer, which owns the mapping to status codes.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindConflict        ErrorKind = "conflict"
	KindInvalidArgument ErrorKind = "invalid_argument"
)

// Error is the typed error returned by every service operation that fails for
// a domain reason. Anything else bubbling out of a service is an internal
// failure.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func notFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func invalidArgument(code, message string) *Error {
	return &Error{Kind: KindInvalidArgument, Code: code, Message: message}
}

// AsError unwraps a service error from err, if there is one
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// IsKind reports whether err is a service error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	if svcErr, ok := AsError(err); ok {
		return svcErr.Kind == kind
	}
	return false
}
