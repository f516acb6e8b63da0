package entities

import "time"

// ConfirmationCheck binds an event to a rendered roster message. Checks are
// append-only; the one with the highest ID is the one kept up to date.
type ConfirmationCheck struct {
	ID        uint
	EventID   uint
	MessageID string
	CreatedAt time.Time
}
