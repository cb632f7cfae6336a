package service

import "errors"

// Domain error taxonomy. Handlers map these to HTTP statuses via errors.Is:
// ErrDuplicate and ErrInsufficientStock → 400, ErrNotFound → 404.
// Outbound notification failures never become errors here — they are logged
// and swallowed by the workers.
var (
	ErrDuplicate         = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("not enough stock available")
)
