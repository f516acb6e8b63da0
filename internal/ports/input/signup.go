package input

import (
	"context"

	"eventbot/internal/domain/entities"
)

type SignupUseCase interface {
	Join(ctx context.Context, event *entities.Event, userID string) (*entities.Signup, error)
	Unsign(ctx context.Context, event *entities.Event, userID string) error
	BulkAdd(ctx context.Context, event *entities.Event, userIDs []string, requesterID string) ([]entities.SignupOutcome, error)
	Remove(ctx context.Context, event *entities.Event, userIDs []string, requesterID string) ([]entities.SignupOutcome, error)
	ListSignups(ctx context.Context, event *entities.Event) ([]entities.Signup, error)
	Roster(ctx context.Context, event *entities.Event) (entities.Roster, error)
	GetSignup(ctx context.Context, id uint) (*entities.Signup, error)
}
