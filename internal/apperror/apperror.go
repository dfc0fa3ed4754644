// Package apperror defines the closed set of failure kinds surfaced by the
// gateway and the HTTP status each one maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure by where it originated
type Kind int

const (
	// ValidationFailure means the caller's input was missing or malformed
	ValidationFailure Kind = iota + 1
	// UpstreamFailure means the provider answered with a non-2xx status
	// or a body that could not be decoded
	UpstreamFailure
	// NetworkFailure means the provider could not be reached
	NetworkFailure
)

func (k Kind) String() string {
	switch k {
	case ValidationFailure:
		return "validation_failure"
	case UpstreamFailure:
		return "upstream_failure"
	case NetworkFailure:
		return "network_failure"
	default:
		return "unknown"
	}
}

// StatusCode returns the HTTP status a failure of the given kind is reported with.
// All kinds currently map to 500; callers have never been able to rely on 4xx.
func StatusCode(k Kind) int {
	switch k {
	case ValidationFailure:
		return http.StatusInternalServerError
	case UpstreamFailure:
		return http.StatusInternalServerError
	case NetworkFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a ValidationFailure
func Validation(op, message string) *Error {
	return &Error{Kind: ValidationFailure, Op: op, Message: message}
}

// Upstream wraps an error produced while talking to, or decoding a reply from, the provider
func Upstream(op string, err error) *Error {
	return &Error{Kind: UpstreamFailure, Op: op, Err: err}
}

// Network wraps a transport-level failure
func Network(op string, err error) *Error {
	return &Error{Kind: NetworkFailure, Op: op, Err: err}
}

// KindOf returns the kind carried by err. Unclassified errors count as UpstreamFailure.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return UpstreamFailure
}
