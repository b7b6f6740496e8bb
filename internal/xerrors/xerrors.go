// Package xerrors defines the tagged error categories used at the
// extraction boundary. Callers branch on Kind rather than matching
// error strings.
package xerrors

import (
	"errors"
	"fmt"
)

// Kind is a machine-checkable failure category.
type Kind string

const (
	// KindFetch covers network failures, timeouts, DNS errors and
	// non-success HTTP statuses.
	KindFetch Kind = "fetch_error"
	// KindUnsupportedFormat means the fetched content type is neither
	// PDF nor HTML.
	KindUnsupportedFormat Kind = "unsupported_format"
	// KindExtractionEmpty means extraction produced text below the
	// minimum useful length.
	KindExtractionEmpty Kind = "extraction_empty"
	// KindStructuringUnreachable means the structuring service could
	// not be reached or answered with a server error.
	KindStructuringUnreachable Kind = "structuring_unreachable"
	// KindStructuringMalformed means the structuring service answered
	// with output that could not be parsed into a menu.
	KindStructuringMalformed Kind = "structuring_malformed"
	// KindValidationFailed means a structured menu did not meet the
	// validator thresholds.
	KindValidationFailed Kind = "validation_failed"
	// KindNotFound is the terminal failure: no strategy produced a
	// valid menu.
	KindNotFound Kind = "not_found"
)

// Error carries a Kind plus human-readable detail and an optional cause.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with formatted detail.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and detail to an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the Kind of err when it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// HasKind reports whether err carries the given Kind.
func HasKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
