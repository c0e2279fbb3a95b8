package checkoutsession

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNetwork             Kind = "NetworkError"
	KindOrderCreationFailed Kind = "OrderCreationFailed"
	KindCaptureFailed       Kind = "CaptureFailed"
	KindRestartable         Kind = "Restartable"
	KindRedirectFailed      Kind = "RedirectFailed"
)

// Error carries the kind of failure and the message that was shown to the shopper
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

var (
	ErrNetwork             = &Error{Kind: KindNetwork}
	ErrOrderCreationFailed = &Error{Kind: KindOrderCreationFailed}
	ErrCaptureFailed       = &Error{Kind: KindCaptureFailed}
	ErrRestartable         = &Error{Kind: KindRestartable}
	ErrRedirectFailed      = &Error{Kind: KindRedirectFailed}
)

func newError(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind, so errors.Is(err, ErrRestartable) works for any restartable error
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func KindOf(err error) (Kind, bool) {
	var checkoutErr *Error
	if errors.As(err, &checkoutErr) {
		return checkoutErr.Kind, true
	}
	return "", false
}
