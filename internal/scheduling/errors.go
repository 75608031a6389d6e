package scheduling

import "fmt"

// Kind classifies a scheduling error for transport mapping.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindConflict
	KindValidation
)

// Error is a scheduling failure carrying its kind. All errors are surfaced
// synchronously to the caller; nothing is retried.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrNotFound builds a not-found error.
func ErrNotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ErrForbidden builds a role or ownership mismatch error.
func ErrForbidden(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// ErrConflict builds a conflict error (slot taken, unapproved or inactive
// doctor/hospital, doctor not available on the requested day).
func ErrConflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// ErrValidation builds a malformed-input error.
func ErrValidation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err when it is a scheduling error.
func KindOf(err error) (Kind, bool) {
	e, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return e.Kind, true
}
