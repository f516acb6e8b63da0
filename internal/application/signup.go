package application

import (
	"context"
	"errors"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var _ input.SignupUseCase = (*SignupService)(nil)

// RosterObserver is told whenever an event's roster changed.
type RosterObserver interface {
	OnRosterChanged(ctx context.Context, event *entities.Event)
}

type SignupService struct {
	signupRepo output.SignupRepository
	authorizer output.Authorizer
	observer   RosterObserver
	// removeRequiresModerator gates Remove behind the moderator check.
	removeRequiresModerator bool
	now                     func() time.Time
}

func NewSignupService(
	signupRepo output.SignupRepository,
	authorizer output.Authorizer,
	observer RosterObserver,
	removeRequiresModerator bool,
) *SignupService {
	return &SignupService{
		signupRepo:              signupRepo,
		authorizer:              authorizer,
		observer:                observer,
		removeRequiresModerator: removeRequiresModerator,
		now:                     time.Now,
	}
}

func (s *SignupService) Join(ctx context.Context, event *entities.Event, userID string) (*entities.Signup, error) {
	signup, err := s.admit(ctx, event, userID)
	if err != nil {
		return nil, err
	}
	s.rosterChanged(ctx, event)
	return signup, nil
}

// admit runs the admission decision for one user without notifying.
func (s *SignupService) admit(ctx context.Context, event *entities.Event, userID string) (*entities.Signup, error) {
	if !event.IsOpen() {
		return nil, domain.ErrEventNotFound
	}
	_, err := s.signupRepo.Find(ctx, event.ID, userID)
	if err == nil {
		return nil, domain.ErrAlreadySignedUp
	}
	if !isNotFound(err) {
		return nil, storageErr("find signup", err)
	}

	signup := &entities.Signup{
		EventID:   event.ID,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	if err := s.signupRepo.Add(ctx, signup); err != nil {
		switch {
		case errors.Is(err, output.ErrDuplicateSignup):
			return nil, domain.ErrAlreadySignedUp
		case errors.Is(err, output.ErrCapacityReached):
			return nil, domain.ErrEventFull
		case errors.Is(err, output.ErrEventClosed):
			return nil, domain.ErrEventNotFound
		}
		return nil, storageErr("add signup", err)
	}
	event.ParticipantCount++
	return signup, nil
}

func (s *SignupService) Unsign(ctx context.Context, event *entities.Event, userID string) error {
	if err := s.withdraw(ctx, event, userID); err != nil {
		return err
	}
	s.rosterChanged(ctx, event)
	return nil
}

func (s *SignupService) withdraw(ctx context.Context, event *entities.Event, userID string) error {
	signup, err := s.signupRepo.Find(ctx, event.ID, userID)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotSignedUp
		}
		return storageErr("find signup", err)
	}
	if err := s.signupRepo.Delete(ctx, signup.ID); err != nil {
		if isNotFound(err) {
			return domain.ErrNotSignedUp
		}
		return storageErr("delete signup", err)
	}
	if event.ParticipantCount > 0 {
		event.ParticipantCount--
	}
	return nil
}

// BulkAdd signs up every user it can. Each user goes through the same admission as
// Join; users already signed up or beyond capacity are skipped.
func (s *SignupService) BulkAdd(ctx context.Context, event *entities.Event, userIDs []string, requesterID string) ([]entities.SignupOutcome, error) {
	if err := authorize(ctx, s.authorizer, requesterID, event.Scope); err != nil {
		return nil, err
	}
	outcomes := make([]entities.SignupOutcome, 0, len(userIDs))
	for _, userID := range userIDs {
		outcome := entities.SignupOutcome{UserID: userID, Result: entities.SignupAdded}
		if _, err := s.admit(ctx, event, userID); err != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadySignedUp):
				outcome.Result = entities.SignupAlreadySignedUp
			case errors.Is(err, domain.ErrEventFull):
				outcome.Result = entities.SignupEventFull
			default:
				outcome.Result = entities.SignupFailed
				outcome.Err = err
			}
		}
		outcomes = append(outcomes, outcome)
	}
	s.rosterChanged(ctx, event)
	return outcomes, nil
}

// Remove deletes the signups of userIDs, skipping users that are not signed up.
func (s *SignupService) Remove(ctx context.Context, event *entities.Event, userIDs []string, requesterID string) ([]entities.SignupOutcome, error) {
	if s.removeRequiresModerator {
		if err := authorize(ctx, s.authorizer, requesterID, event.Scope); err != nil {
			return nil, err
		}
	}
	outcomes := make([]entities.SignupOutcome, 0, len(userIDs))
	for _, userID := range userIDs {
		outcome := entities.SignupOutcome{UserID: userID, Result: entities.SignupRemoved}
		if err := s.withdraw(ctx, event, userID); err != nil {
			if errors.Is(err, domain.ErrNotSignedUp) {
				outcome.Result = entities.SignupNotSignedUp
			} else {
				outcome.Result = entities.SignupFailed
				outcome.Err = err
			}
		}
		outcomes = append(outcomes, outcome)
	}
	s.rosterChanged(ctx, event)
	return outcomes, nil
}

func (s *SignupService) ListSignups(ctx context.Context, event *entities.Event) ([]entities.Signup, error) {
	signups, err := s.signupRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, storageErr("list signups", err)
	}
	return signups, nil
}

func (s *SignupService) Roster(ctx context.Context, event *entities.Event) (entities.Roster, error) {
	return buildRoster(ctx, s.signupRepo, event)
}

func (s *SignupService) GetSignup(ctx context.Context, id uint) (*entities.Signup, error) {
	signup, err := s.signupRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotSignedUp
		}
		return nil, storageErr("find signup", err)
	}
	return signup, nil
}

func (s *SignupService) rosterChanged(ctx context.Context, event *entities.Event) {
	if s.observer != nil {
		s.observer.OnRosterChanged(ctx, event)
	}
}

func buildRoster(ctx context.Context, signupRepo output.SignupRepository, event *entities.Event) (entities.Roster, error) {
	signups, err := signupRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return entities.Roster{}, storageErr("list signups", err)
	}
	roster := entities.Roster{Event: *event, Signups: signups}
	roster.Event.ParticipantCount = len(signups)
	return roster, nil
}
