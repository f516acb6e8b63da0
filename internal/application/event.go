package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo  output.EventRepository
	authorizer output.Authorizer
	validate   *validator.Validate
	now        func() time.Time
}

func NewEventService(eventRepo output.EventRepository, authorizer output.Authorizer) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		authorizer: authorizer,
		validate:   validator.New(),
		now:        time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, req input.CreateEventRequest, requesterID string) (*entities.Event, error) {
	if err := authorize(ctx, s.authorizer, requesterID, req.Scope); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.ShortName = strings.TrimSpace(req.ShortName)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}

	// Name and short name share one namespace among the scope's open events.
	for _, candidate := range []string{req.Name, req.ShortName} {
		_, err := s.eventRepo.FindOpenByNameOrAlias(ctx, candidate, req.Scope)
		if err == nil {
			return nil, domain.ErrDuplicateEvent
		}
		if !isNotFound(err) {
			return nil, storageErr("find open event", err)
		}
	}

	event := &entities.Event{
		Name:      req.Name,
		ShortName: req.ShortName,
		Scope:     req.Scope,
		Capacity:  req.Capacity,
		State:     entities.EventOpen,
		CreatedBy: requesterID,
		CreatedAt: s.now(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, output.ErrNameTaken) {
			return nil, domain.ErrDuplicateEvent
		}
		return nil, storageErr("create event", err)
	}
	return event, nil
}

func (s *EventService) CloseEvent(ctx context.Context, query string, scope entities.Scope, requesterID string) (*entities.Event, error) {
	if err := authorize(ctx, s.authorizer, requesterID, scope); err != nil {
		return nil, err
	}
	event, err := s.ResolveActiveEvent(ctx, query, scope)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Close(ctx, event.ID); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, storageErr("close event", err)
	}
	event.State = entities.EventClosed
	event.ClosedAt = s.now()
	return event, nil
}

func (s *EventService) ResolveActiveEvent(ctx context.Context, query string, scope entities.Scope) (*entities.Event, error) {
	if entities.NameKey(query) == "" {
		return nil, domain.ErrEventNotFound
	}
	event, err := s.eventRepo.FindOpenByNameOrAlias(ctx, query, scope)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, storageErr("find open event", err)
	}
	return event, nil
}

func (s *EventService) ListActiveEvents(ctx context.Context, scope entities.Scope) ([]entities.Event, error) {
	events, err := s.eventRepo.ListOpen(ctx, scope)
	if err != nil {
		return nil, storageErr("list open events", err)
	}
	return events, nil
}

// GetEvent returns an event by ID whatever its state.
func (s *EventService) GetEvent(ctx context.Context, id uint) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, storageErr("find event", err)
	}
	return event, nil
}
