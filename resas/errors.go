package resas

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a client failure as retryable or not.
type ErrorKind int

const (
	// KindFatal marks an unrecoverable failure: malformed input or output,
	// an unretryable server status, a transport failure, or an exhausted
	// retry budget.
	KindFatal ErrorKind = iota
	// KindRetryable marks a transient condition the server signaled via an
	// HTTP status or an application-level status code in the retryable set.
	KindRetryable
)

// String returns the kind as it appears in rendered error messages.
func (k ErrorKind) String() string {
	switch k {
	case KindRetryable:
		return "Retryable"
	default:
		return "Fatal"
	}
}

// Error is the typed failure returned by the client. It pairs a kind with an
// optional underlying cause and an optional descriptive message.
type Error struct {
	kind    ErrorKind
	cause   error
	message string
}

// NewError builds an Error from a kind, an optional cause, and an optional
// message.
func NewError(kind ErrorKind, cause error, message string) *Error {
	return &Error{kind: kind, cause: cause, message: message}
}

// fatalError wraps a transport or decoding failure. These are never retried:
// they indicate a structural problem (bad URL, malformed JSON), not a
// transient server condition.
func fatalError(cause error) *Error {
	return &Error{kind: KindFatal, cause: cause}
}

// Kind returns the error's classification.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// IsRetriable reports whether the retry loop may try the request again.
func (e *Error) IsRetriable() bool {
	return e.kind == KindRetryable
}

// ToFatal escalates the error after the retry budget is spent. It returns a
// new Fatal error carrying the original cause and the supplied message; the
// receiver must not be used afterwards.
func (e *Error) ToFatal(message string) *Error {
	return &Error{kind: KindFatal, cause: e.cause, message: message}
}

// Error renders the kind, then the message and cause when present, message
// first.
func (e *Error) Error() string {
	parts := make([]string, 0, 2)
	if e.message != "" {
		parts = append(parts, e.message)
	}
	if e.cause != nil {
		parts = append(parts, e.cause.Error())
	}
	if len(parts) == 0 {
		return e.kind.String() + " error"
	}
	return e.kind.String() + " error: " + strings.Join(parts, ": ")
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPError records a non-success HTTP status returned by the API host. It is
// carried as the cause of client errors built from transport-level failures.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
