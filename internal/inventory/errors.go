package inventory

import "errors"

var (
	// ErrNotFound is returned by lookups of an unknown product id.
	ErrNotFound = errors.New("product not found")
	// ErrKeyNotFound is returned by a Repository when nothing is stored under a key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrCorruptState wraps a stored value that cannot be decoded at startup.
	ErrCorruptState = errors.New("corrupt stored state")
)
