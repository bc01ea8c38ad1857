package tracker

import "errors"

var (
	// ErrReadOnly is returned by every mutation when the session does not
	// own the data.
	ErrReadOnly = errors.New("read-only session")

	// ErrNotFound is returned when a subject, project or resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when a new subject's id is already taken.
	ErrDuplicateID = errors.New("subject id already exists")

	// ErrNotCustom is returned when an operation reserved for custom
	// subjects targets a catalog subject.
	ErrNotCustom = errors.New("not a custom subject")
)
