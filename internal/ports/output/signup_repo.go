package output

import (
	"context"

	"eventbot/internal/domain/entities"
)

type SignupRepository interface {
	// Add admits a signup: within one transaction it checks that the event is still
	// open (ErrEventClosed), that the user has no signup (ErrDuplicateSignup) and that
	// the capacity is not reached (ErrCapacityReached), then inserts and sets the ID.
	Add(ctx context.Context, signup *entities.Signup) error
	Find(ctx context.Context, eventID uint, userID string) (*entities.Signup, error)
	FindByID(ctx context.Context, id uint) (*entities.Signup, error)
	// ListByEvent returns signups in creation order.
	ListByEvent(ctx context.Context, eventID uint) ([]entities.Signup, error)
	Delete(ctx context.Context, id uint) error
}
