package storage

import "errors"

var (
	// ErrEmptyInput is returned when an upload carries no bytes.
	ErrEmptyInput = errors.New("cannot store empty file")

	// ErrInvalidName is returned for stored names that could escape the upload root.
	ErrInvalidName = errors.New("invalid file name")

	// ErrNotFound is returned when no file exists under a stored name.
	ErrNotFound = errors.New("file not found")

	// ErrStorageUnavailable is returned when the upload root cannot be established.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrIOFailure wraps unexpected disk errors.
	ErrIOFailure = errors.New("i/o failure")
)
