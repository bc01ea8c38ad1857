package storage

import "errors"

var (
	// ErrNotFound indicates the remote has no user data file yet.
	ErrNotFound = errors.New("user data not found")

	// ErrStaleWrite indicates the version token sent with a save no
	// longer matches the remote file.
	ErrStaleWrite = errors.New("remote changed since last read")

	// ErrUnauthorized indicates the token was missing, invalid or lacks
	// write access.
	ErrUnauthorized = errors.New("not authorized")

	// ErrUnavailable indicates the remote could not be reached.
	ErrUnavailable = errors.New("remote unavailable")

	// ErrReadOnly is returned by stores that cannot save.
	ErrReadOnly = errors.New("store is read-only")
)
