package models

import (
	"errors"
	"fmt"
)

var (
	// ErrCalendarExists is returned when creating a calendar whose name is
	// already present in the store.
	ErrCalendarExists = errors.New("calendar with this name already exists")
	// ErrAmbiguousDefault means more than one calendar is flagged default.
	ErrAmbiguousDefault = errors.New("more than one calendar is flagged as default")
	// ErrInvalidIdentifier is returned for event ids that are not UUIDs.
	ErrInvalidIdentifier = errors.New("invalid event identifier")
	// ErrStorageUnavailable is returned when the store cannot be opened or
	// its schema cannot be created.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageIO matches every *StorageError through errors.Is.
	ErrStorageIO = errors.New("storage i/o error")
	// ErrEventNotFound is returned by update and delete when no row matched.
	ErrEventNotFound = errors.New("event not found")
	// ErrCalendarEmpty is returned by operations that need a stored
	// calendar when the calendar has no events yet.
	ErrCalendarEmpty = errors.New("calendar has no events")
)

// StorageError wraps a failure to prepare, execute or scan a statement.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorageIO) true for any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageIO
}
