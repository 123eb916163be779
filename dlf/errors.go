package dlf

import (
	"errors"
	"fmt"
)

var (
	// ErrTableLoad is matched by every *TableLoadError via errors.Is.
	ErrTableLoad = errors.New("filter table load failed")

	// ErrShape is returned when a table does not have the expected layout.
	ErrShape = errors.New("unexpected table shape")

	// ErrContainer is returned when a binary container is corrupt.
	ErrContainer = errors.New("invalid binary container")
)

// TableLoadError reports that the backing file of a filter could not be read
// or decoded. It is returned by Accessor.Load on first use.
//
// The original underlying error can be accessed via errors.Unwrap.
type TableLoadError struct {
	Transform string
	Name      string
	File      string
	cause     error
}

func (e *TableLoadError) Error() string {
	return fmt.Sprintf("loading filter %s/%s from %s: %v", e.Transform, e.Name, e.File, e.cause)
}

func (e *TableLoadError) Unwrap() error { return e.cause }

// Is reports whether target is ErrTableLoad.
func (e *TableLoadError) Is(target error) bool {
	return target == ErrTableLoad
}
