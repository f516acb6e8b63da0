package output

import (
	"context"

	"eventbot/internal/domain/entities"
)

// Authorizer decides whether a user may run moderator commands in a scope.
type Authorizer interface {
	IsModerator(ctx context.Context, userID string, scope entities.Scope) (bool, error)
}

// RosterRenderer draws rosters as chat messages.
type RosterRenderer interface {
	// RenderRoster posts a new message when messageID is empty, otherwise edits
	// messageID in place. It returns the rendered message's ID.
	RenderRoster(ctx context.Context, roster entities.Roster, messageID string) (string, error)
	// LookupMessage returns ErrMessageNotFound when the message is gone.
	LookupMessage(ctx context.Context, channelID, messageID string) (string, error)
}
