package nphase

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned by accessors for entities that no longer exist.
	// The narrow phase skips such entities silently.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when InvalidEntity is used where a real handle is required.
	ErrInvalidEntity = errors.New("invalid entity")
)

// IsNotFound reports whether err means the entity was deleted.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NewNotFoundError returns an error wrapping ErrNotFound for entity e.
func NewNotFoundError(kind string, e Entity) error {
	return errors.Wrapf(ErrNotFound, "%s %d", kind, e)
}
