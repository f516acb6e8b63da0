package output

import "context"

// Pinger reports store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repositories groups one backend's repositories.
type Repositories struct {
	Events             EventRepository
	Signups            SignupRepository
	ConfirmationChecks ConfirmationCheckRepository
	Pinger             Pinger
}
