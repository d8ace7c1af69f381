package marketplace

import "errors"

// Caller-mistake errors are surfaced as values; the web boundary maps them
// to its own status codes. Ranking-provider failures never appear here,
// they only downgrade recommendation quality.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user id already registered")
	ErrNoInventory   = errors.New("no surplus food available nearby")
	ErrUnauthorized  = errors.New("not authorized for this dining hall")
	ErrHallNotFound  = errors.New("dining hall not found")
)
