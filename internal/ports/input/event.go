package input

import (
	"context"

	"eventbot/internal/domain/entities"
)

// CreateEventRequest describes an event to open.
type CreateEventRequest struct {
	Name      string `validate:"required,max=100"`
	ShortName string `validate:"required,max=100"`
	Capacity  *int   `validate:"omitempty,min=0,max=2147483647"`
	Scope     entities.Scope
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, req CreateEventRequest, requesterID string) (*entities.Event, error)
	CloseEvent(ctx context.Context, query string, scope entities.Scope, requesterID string) (*entities.Event, error)
	ResolveActiveEvent(ctx context.Context, query string, scope entities.Scope) (*entities.Event, error)
	ListActiveEvents(ctx context.Context, scope entities.Scope) ([]entities.Event, error)
	GetEvent(ctx context.Context, id uint) (*entities.Event, error)
}
