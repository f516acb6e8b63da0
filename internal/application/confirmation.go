package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var (
	_ input.ConfirmationUseCase = (*ConfirmationService)(nil)
	_ RosterObserver            = (*ConfirmationService)(nil)
)

// ConfirmationService runs confirmation checks: a roster message bound to an event
// that is re-rendered on every roster change. Only the latest check of an event is
// kept up to date.
type ConfirmationService struct {
	events     input.EventUseCase
	signupRepo output.SignupRepository
	checkRepo  output.ConfirmationCheckRepository
	authorizer output.Authorizer
	renderer   output.RosterRenderer
	now        func() time.Time
}

func NewConfirmationService(
	events input.EventUseCase,
	signupRepo output.SignupRepository,
	checkRepo output.ConfirmationCheckRepository,
	authorizer output.Authorizer,
	renderer output.RosterRenderer,
) *ConfirmationService {
	return &ConfirmationService{
		events:     events,
		signupRepo: signupRepo,
		checkRepo:  checkRepo,
		authorizer: authorizer,
		renderer:   renderer,
		now:        time.Now,
	}
}

// StartCheck renders a fresh roster message for the event and records it as the
// event's latest check. Non-moderators are ignored without an error.
func (s *ConfirmationService) StartCheck(ctx context.Context, query string, scope entities.Scope, requesterID string) (*entities.ConfirmationCheck, error) {
	if err := authorize(ctx, s.authorizer, requesterID, scope); err != nil {
		log.Printf("ℹ️ Confirmation check ignored: %s is not a moderator", requesterID)
		return nil, nil
	}
	event, err := s.events.ResolveActiveEvent(ctx, query, scope)
	if err != nil {
		return nil, err
	}
	roster, err := buildRoster(ctx, s.signupRepo, event)
	if err != nil {
		return nil, err
	}
	messageID, err := s.renderer.RenderRoster(ctx, roster, "")
	if err != nil {
		return nil, fmt.Errorf("render roster: %w", err)
	}
	check := &entities.ConfirmationCheck{
		EventID:   event.ID,
		MessageID: messageID,
		CreatedAt: s.now(),
	}
	if err := s.checkRepo.Create(ctx, check); err != nil {
		return nil, storageErr("create confirmation check", err)
	}
	return check, nil
}

// OnRosterChanged re-renders the latest check of event. Refreshing is best effort:
// failures are logged, never returned.
func (s *ConfirmationService) OnRosterChanged(ctx context.Context, event *entities.Event) {
	check, err := s.checkRepo.MostRecentForEvent(ctx, event.ID)
	if err != nil {
		if !isNotFound(err) {
			log.Printf("❌ Latest confirmation check lookup (event=%d): %v", event.ID, err)
		}
		return
	}
	if _, err := s.renderer.LookupMessage(ctx, event.Scope.ChannelID, check.MessageID); err != nil {
		if !errors.Is(err, output.ErrMessageNotFound) {
			log.Printf("❌ Confirmation message lookup (event=%d, message=%s): %v", event.ID, check.MessageID, err)
		}
		return
	}
	roster, err := buildRoster(ctx, s.signupRepo, event)
	if err != nil {
		log.Printf("❌ Roster for confirmation check (event=%d): %v", event.ID, err)
		return
	}
	if _, err := s.renderer.RenderRoster(ctx, roster, check.MessageID); err != nil {
		log.Printf("❌ Confirmation check refresh (event=%d, message=%s): %v", event.ID, check.MessageID, err)
	}
}

func (s *ConfirmationService) LatestCheck(ctx context.Context, eventID uint) (*entities.ConfirmationCheck, error) {
	check, err := s.checkRepo.MostRecentForEvent(ctx, eventID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storageErr("latest confirmation check", err)
	}
	return check, nil
}

func (s *ConfirmationService) ListChecks(ctx context.Context, eventID uint) ([]entities.ConfirmationCheck, error) {
	checks, err := s.checkRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, storageErr("list confirmation checks", err)
	}
	return checks, nil
}
