// Package apperr classifies failures crossing the service boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind buckets an error for status translation and logging.
type Kind string

const (
	// KindBadInput covers invalid coordinates, unsupported problem or edge
	// weight types, malformed configs and out-of-range dimensions.
	KindBadInput Kind = "bad_input"
	// KindMissingResource covers unreadable coordinate files and unknown
	// instance names.
	KindMissingResource Kind = "missing_resource"
	// KindUpstreamFailure covers non-2xx or malformed routing provider
	// responses.
	KindUpstreamFailure Kind = "upstream_failure"
	// KindInternal covers invariant violations inside the solver.
	KindInternal Kind = "internal"
)

// Error carries a kind, an HTTP-style status and a human message.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, status int, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Cause: cause}
}

func BadInput(message string) *Error {
	return newError(KindBadInput, http.StatusBadRequest, message, nil)
}

func BadInputf(format string, args ...any) *Error {
	return newError(KindBadInput, http.StatusBadRequest, fmt.Sprintf(format, args...), nil)
}

func MissingResource(message string, cause error) *Error {
	return newError(KindMissingResource, http.StatusNotFound, message, cause)
}

func UpstreamFailure(message string, cause error) *Error {
	return newError(KindUpstreamFailure, http.StatusBadGateway, message, cause)
}

func Internal(message string, cause error) *Error {
	return newError(KindInternal, http.StatusInternalServerError, message, cause)
}

func Internalf(format string, args ...any) *Error {
	return newError(KindInternal, http.StatusInternalServerError, fmt.Sprintf(format, args...), nil)
}

// StatusOf maps any error to an HTTP status, defaulting to 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// KindOf reports the kind of an error, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
