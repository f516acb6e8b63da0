package input

import (
	"context"

	"eventbot/internal/domain/entities"
)

type ConfirmationUseCase interface {
	// StartCheck returns (nil, nil) when the requester is not a moderator.
	StartCheck(ctx context.Context, query string, scope entities.Scope, requesterID string) (*entities.ConfirmationCheck, error)
	OnRosterChanged(ctx context.Context, event *entities.Event)
	LatestCheck(ctx context.Context, eventID uint) (*entities.ConfirmationCheck, error)
	ListChecks(ctx context.Context, eventID uint) ([]entities.ConfirmationCheck, error)
}
