package output

import (
	"context"

	"eventbot/internal/domain/entities"
)

type ConfirmationCheckRepository interface {
	Create(ctx context.Context, check *entities.ConfirmationCheck) error
	// MostRecentForEvent returns the latest check by creation order, or ErrNotFound.
	MostRecentForEvent(ctx context.Context, eventID uint) (*entities.ConfirmationCheck, error)
	ListByEvent(ctx context.Context, eventID uint) ([]entities.ConfirmationCheck, error)
}
