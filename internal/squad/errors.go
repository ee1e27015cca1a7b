package squad

import (
	"errors"
	"fmt"

	"github.com/mauv0809/cricscore/internal/docstore"
)

var (
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrPlayerNotFound = errors.New("player not found")
	ErrValidation     = errors.New("validation failed")
	// ErrStoreUnavailable is returned, wrapped, when the document store
	// fails. Mutations are not retried.
	ErrStoreUnavailable = docstore.ErrUnavailable
)

// Error is an expected business failure with a message fit for the coach.
type Error struct {
	Kind    error
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
