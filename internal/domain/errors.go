package domain

import "errors"

var (
	// ErrNotFound means no record matched the given id or slug.
	ErrNotFound = errors.New("hotel not found")

	// ErrInvalidID means an identifier that must be numeric was not a
	// well-formed positive integer.
	ErrInvalidID = errors.New("invalid hotel id")

	// ErrMissingIdentifier means an image upload arrived without an id or slug.
	ErrMissingIdentifier = errors.New("identifier is required")

	// ErrRoomNotFound means the hotel resolved but has no room with the
	// given room slug.
	ErrRoomNotFound = errors.New("room not found")
)
