package entities

import "time"

// Signup is a participant's registration to an event. At most one per (EventID, UserID).
type Signup struct {
	ID        uint
	EventID   uint
	UserID    string
	CreatedAt time.Time
}

// Roster is the data rendered for an event: the event and its signups in creation order.
type Roster struct {
	Event   Event
	Signups []Signup
}

// SignupResult is the per-user result of a bulk operation.
type SignupResult string

const (
	SignupAdded           SignupResult = "added"
	SignupRemoved         SignupResult = "removed"
	SignupAlreadySignedUp SignupResult = "already_signed_up"
	SignupNotSignedUp     SignupResult = "not_signed_up"
	SignupEventFull       SignupResult = "event_full"
	SignupFailed          SignupResult = "failed"
)

type SignupOutcome struct {
	UserID string
	Result SignupResult
	Err    error // set when Result is SignupFailed
}
