package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected covers invalid forms and requests the provider refused.
	ErrRejected           = errors.New("request rejected")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	// ErrProviderUnavailable is returned, wrapped, when the identity
	// provider cannot be reached or answers with something unexpected.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Error is an expected authentication failure with a message fit for the
// coach. Code holds the provider's error code when there is one.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsBusinessError reports whether err is a rejected request rather than a
// failure of the system.
func IsBusinessError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
