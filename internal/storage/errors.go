package storage

import (
	"errors"
	"fmt"
)

// Kind classifies store failures into the shared taxonomy surfaced to
// callers. The store never raises ValidationFailed itself; that kind is
// reserved for the form boundary.
type Kind int

const (
	StoreUnavailable Kind = iota
	ReadFailed
	WriteFailed
	ValidationFailed
)

func (k Kind) String() string {
	switch k {
	case StoreUnavailable:
		return "store unavailable"
	case ReadFailed:
		return "read failed"
	case WriteFailed:
		return "write failed"
	case ValidationFailed:
		return "validation failed"
	default:
		return "unknown"
	}
}

// Error wraps an engine-level failure with its kind and the operation
// that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is (or wraps) a store Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}
