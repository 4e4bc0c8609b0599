package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidSignupStep  = errors.New("invalid signup step")
	ErrNoSignupInProgress = errors.New("no signup in progress")
	ErrNoAccount          = errors.New("no account found")
	ErrEmailMismatch      = errors.New("email does not match the registered account")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnknownRoute       = errors.New("unknown route")
	ErrKeyNotFound        = errors.New("key not found")
)

// MessageError pairs a sentinel with the text shown inline on the active
// form. errors.Is matches the sentinel.
type MessageError struct {
	Err     error
	Message string
}

func (e *MessageError) Error() string { return e.Message }

func (e *MessageError) Unwrap() error { return e.Err }

// NewValidationError reports a form that cannot advance.
func NewValidationError(msg string) error {
	return &MessageError{Err: ErrValidation, Message: msg}
}
