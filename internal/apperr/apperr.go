package apperr

import (
	"errors"
	"fmt"
)

// ===============================
// Business error kinds
// ===============================

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindInvalidTransition
	KindCrossTenant
	KindNotFound
	KindUnauthorized
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindCrossTenant:
		return "cross_tenant"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ===============================
// Constructors
// ===============================

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(err error, kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func InvalidTransition(current, operation string) *Error {
	return New(
		KindInvalidTransition,
		"invalid_status_transition",
		fmt.Sprintf("appointment in status %q cannot be %s", current, operation),
	)
}

// CrossTenant marks a reference to another tenant's row. Its code and message
// match NotFound for the same entity, so a response built from it cannot be
// told apart from a plain miss; the kind keeps the distinction for auditing.
func CrossTenant(entity string) *Error {
	return New(KindCrossTenant, entity+"_not_found", entity+" not found")
}

func NotFound(entity string) *Error {
	return New(KindNotFound, entity+"_not_found", entity+" not found")
}

func Unauthorized(code, message string) *Error {
	return New(KindUnauthorized, code, message)
}

func Internal(message string, err error) *Error {
	return Wrap(err, KindInternal, "internal_error", message)
}

// ===============================
// Inspection
// ===============================

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return "internal_error"
}
