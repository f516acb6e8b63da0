package domain

import "errors"

// Error is a domain error carrying a stable code. Adapters turn the code into a
// user-facing message (see pkg/discord.ErrorMessageID).
type Error struct {
	code string
	msg  string
}

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable identifier of the error.
func (e *Error) Code() string { return e.code }

// Domain errors.
var (
	ErrUnauthorized       = newError("unauthorized", "requester is not a moderator")
	ErrDuplicateEvent     = newError("duplicate_event", "an open event already uses that name or short name")
	ErrEventNotFound      = newError("event_not_found", "no open event with that name")
	ErrAlreadySignedUp    = newError("already_signed_up", "user is already signed up")
	ErrNotSignedUp        = newError("not_signed_up", "user is not signed up")
	ErrEventFull          = newError("event_full", "event is full")
	ErrInvalidEvent       = newError("invalid_event", "invalid event definition")
	ErrStorageUnavailable = newError("storage_unavailable", "storage unavailable")
)

// Code extracts the domain code of err, or "" when err is not a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}
