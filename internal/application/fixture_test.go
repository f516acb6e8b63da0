package application

import (
	"context"
	"testing"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
)

const (
	modID  = "mod"
	userA  = "user-a"
	userB  = "user-b"
	userC  = "user-c"
	nobody = "nobody"
)

var scope = entities.Scope{GuildID: "guild-1", ChannelID: "chan-1"}

type fixture struct {
	store    *memStore
	authz    *fakeAuthorizer
	renderer *fakeRenderer
	events   *EventService
	signups  *SignupService
	checks   *ConfirmationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	authz := &fakeAuthorizer{moderators: map[string]bool{modID: true}}
	renderer := &fakeRenderer{gone: map[string]bool{}}
	events := NewEventService(memEvents{store}, authz)
	checks := NewConfirmationService(events, memSignups{store}, memChecks{store}, authz, renderer)
	signups := NewSignupService(memSignups{store}, authz, checks, true)
	return &fixture{
		store:    store,
		authz:    authz,
		renderer: renderer,
		events:   events,
		signups:  signups,
		checks:   checks,
	}
}

func capacity(n int) *int { return &n }

func (f *fixture) createEvent(t *testing.T, name, short string, limit *int) *entities.Event {
	t.Helper()
	e, err := f.events.CreateEvent(context.Background(), input.CreateEventRequest{
		Name:      name,
		ShortName: short,
		Capacity:  limit,
		Scope:     scope,
	}, modID)
	if err != nil {
		t.Fatalf("CreateEvent(%q, %q): %v", name, short, err)
	}
	return e
}

func (f *fixture) resolve(t *testing.T, query string) *entities.Event {
	t.Helper()
	e, err := f.events.ResolveActiveEvent(context.Background(), query, scope)
	if err != nil {
		t.Fatalf("ResolveActiveEvent(%q): %v", query, err)
	}
	return e
}

func (f *fixture) count(t *testing.T, eventID uint) int {
	t.Helper()
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.countLocked(eventID)
}
