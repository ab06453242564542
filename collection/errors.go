package collection

import (
	"errors"
	"fmt"

	"github.com/fulldump/multiindex/slab"
)

var ErrIndexExists = errors.New("index already exists")

// UniquenessError is a precondition violation: a record would share a key
// with another one on a unique index.
type UniquenessError struct {
	Index string
	Key   any
	Err   error
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("uniqueness constraint violated on field '%s' with value '%v': %s", e.Index, e.Key, e.Err)
}

func (e *UniquenessError) Unwrap() error {
	return e.Err
}

// UpdateError is raised when an Update mutator touched an indexed field.
type UpdateError struct {
	Index string
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update changed indexed field '%s', use modify instead", e.Index)
}

// InvariantError signals that the indexes and the store disagree. It is a bug
// in the container and is always raised with panic.
type InvariantError struct {
	Index  string
	Slot   slab.Slot
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariants broken in index '%s' at slot %d: %s", e.Index, e.Slot, e.Reason)
}
