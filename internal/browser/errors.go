package browser

import (
	"errors"
	"fmt"
)

// ErrNoResults means the search page loaded but no tweet rendered within the
// wait budget. The caller treats this as a zero-result day, not a failure.
var ErrNoResults = errors.New("browser: no results rendered")

// SessionError is a browser/driver communication fault: the retryable class,
// as opposed to a page that simply has no content.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string { return fmt.Sprintf("browser: %s: %v", e.Op, e.Err) }

func (e *SessionError) Unwrap() error { return e.Err }

// Fault wraps err as a SessionError for the given operation.
func Fault(op string, err error) error { return &SessionError{Op: op, Err: err} }

// IsSessionFault reports whether err is (or wraps) a SessionError.
func IsSessionFault(err error) bool {
	var se *SessionError
	return errors.As(err, &se)
}
