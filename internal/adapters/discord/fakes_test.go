package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
)

// echoT renders "key" or "key{data}" so replies can be asserted without message files.
type echoT struct{}

func (echoT) T(_, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	return fmt.Sprintf("%s{%v}", key, data)
}

type fakeEvents struct {
	created *input.CreateEventRequest
	query   string
	event   *entities.Event
	active  []entities.Event
	err     error
}

func (f *fakeEvents) CreateEvent(_ context.Context, req input.CreateEventRequest, _ string) (*entities.Event, error) {
	f.created = &req
	if f.err != nil {
		return nil, f.err
	}
	return &entities.Event{ID: 1, Name: req.Name, ShortName: req.ShortName, Capacity: req.Capacity, Scope: req.Scope, State: entities.EventOpen}, nil
}

func (f *fakeEvents) CloseEvent(_ context.Context, query string, _ entities.Scope, _ string) (*entities.Event, error) {
	f.query = query
	return f.event, f.err
}

func (f *fakeEvents) ResolveActiveEvent(_ context.Context, query string, _ entities.Scope) (*entities.Event, error) {
	f.query = query
	return f.event, f.err
}

func (f *fakeEvents) ListActiveEvents(context.Context, entities.Scope) ([]entities.Event, error) {
	return f.active, f.err
}

func (f *fakeEvents) GetEvent(context.Context, uint) (*entities.Event, error) {
	return f.event, f.err
}

type fakeSignups struct {
	joined    []string
	unsigned  []string
	targets   []string
	err       error
	rosterErr error
}

func (f *fakeSignups) Join(_ context.Context, _ *entities.Event, userID string) (*entities.Signup, error) {
	f.joined = append(f.joined, userID)
	if f.err != nil {
		return nil, f.err
	}
	return &entities.Signup{UserID: userID}, nil
}

func (f *fakeSignups) Unsign(_ context.Context, _ *entities.Event, userID string) error {
	f.unsigned = append(f.unsigned, userID)
	return f.err
}

func (f *fakeSignups) outcomes(userIDs []string, result entities.SignupResult) ([]entities.SignupOutcome, error) {
	f.targets = userIDs
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entities.SignupOutcome, len(userIDs))
	for i, id := range userIDs {
		out[i] = entities.SignupOutcome{UserID: id, Result: result}
	}
	return out, nil
}

func (f *fakeSignups) BulkAdd(_ context.Context, _ *entities.Event, userIDs []string, _ string) ([]entities.SignupOutcome, error) {
	return f.outcomes(userIDs, entities.SignupAdded)
}

func (f *fakeSignups) Remove(_ context.Context, _ *entities.Event, userIDs []string, _ string) ([]entities.SignupOutcome, error) {
	return f.outcomes(userIDs, entities.SignupRemoved)
}

func (f *fakeSignups) ListSignups(context.Context, *entities.Event) ([]entities.Signup, error) {
	return nil, nil
}

func (f *fakeSignups) Roster(_ context.Context, event *entities.Event) (entities.Roster, error) {
	if f.rosterErr != nil {
		return entities.Roster{}, f.rosterErr
	}
	return entities.Roster{Event: *event}, nil
}

func (f *fakeSignups) GetSignup(context.Context, uint) (*entities.Signup, error) {
	return nil, nil
}

type fakeConfirmations struct {
	query string
	err   error
}

func (f *fakeConfirmations) StartCheck(_ context.Context, query string, _ entities.Scope, _ string) (*entities.ConfirmationCheck, error) {
	f.query = query
	return nil, f.err
}

func (f *fakeConfirmations) OnRosterChanged(context.Context, *entities.Event) {}

func (f *fakeConfirmations) LatestCheck(context.Context, uint) (*entities.ConfirmationCheck, error) {
	return nil, nil
}

func (f *fakeConfirmations) ListChecks(context.Context, uint) ([]entities.ConfirmationCheck, error) {
	return nil, nil
}

type titleEmbedder struct{}

func (titleEmbedder) RosterEmbed(_ context.Context, roster entities.Roster) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: roster.Event.Name}
}
