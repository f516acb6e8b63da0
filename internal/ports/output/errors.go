package output

import "errors"

// Store-level outcomes. Repositories return these (possibly wrapped); the application
// maps them to domain errors. Any other repository error means storage is unavailable.
var (
	ErrNotFound = errors.New("record not found")

	// ErrNameTaken: an open event in the scope already uses the name or short name.
	ErrNameTaken = errors.New("event name taken in scope")

	ErrDuplicateSignup = errors.New("signup already exists")
	ErrCapacityReached = errors.New("event capacity reached")

	// ErrEventClosed: the event was closed before the write was applied.
	ErrEventClosed = errors.New("event closed")

	// ErrMessageNotFound: a rendered message no longer exists on the transport.
	ErrMessageNotFound = errors.New("message not found")
)
