package songdl

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNetwork         = errors.New("network failure")
	ErrFileFormat      = errors.New("unrecognised file format")
	ErrValueConversion = errors.New("value conversion failed")
	ErrIO              = errors.New("i/o failure")
	ErrBusy            = errors.New("download already in progress")
)

// Error attaches one of the Err* kinds to an underlying error, so that errors.Is matches both the kind and
// whatever caused it.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// NewError creates an *Error; err may be nil when the kind says everything.
func NewError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf is like NewError but with a formatted message as the underlying error.
func Errorf(kind error, op string, format string, args ...interface{}) *Error {
	return NewError(kind, op, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
