package output

import (
	"context"

	"eventbot/internal/domain/entities"
)

type EventRepository interface {
	// Create persists an open event and sets its ID. It fails with ErrNameTaken when
	// the name or short name collides with any open event of the same scope; the check
	// and the insert are one atomic decision.
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id uint) (*entities.Event, error)
	FindOpenByNameOrAlias(ctx context.Context, query string, scope entities.Scope) (*entities.Event, error)
	ListOpen(ctx context.Context, scope entities.Scope) ([]entities.Event, error)
	// Close flips an open event to closed. ErrNotFound when it is not open anymore.
	Close(ctx context.Context, id uint) error
}
