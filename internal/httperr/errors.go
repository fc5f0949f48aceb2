package httperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidState
	KindInsufficientBalance
	KindUnsupportedMediaType
	KindTooManyRequests
)

// Error is a classified failure. Code is the stable machine-readable
// identifier returned to clients as error_code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(kind Kind, code, message string) error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return New(KindValidation, code, message)
}

func Unauthorized(code, message string) error {
	return New(KindUnauthorized, code, message)
}

func Forbidden(code, message string) error {
	return New(KindForbidden, code, message)
}

func NotFound(code, message string) error {
	return New(KindNotFound, code, message)
}

func Conflict(code, message string) error {
	return New(KindConflict, code, message)
}

func InvalidState(code, message string) error {
	return New(KindInvalidState, code, message)
}

func InsufficientBalance(code, message string) error {
	return New(KindInsufficientBalance, code, message)
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// IsBusiness reports whether err carries the given domain error code.
func IsBusiness(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
