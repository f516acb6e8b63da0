package application

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

// memStore is an in-memory backend for the three repositories. A single mutex makes
// every write atomic, which is the guarantee the real stores give.
type memStore struct {
	mu      sync.Mutex
	nextID  uint
	events  map[uint]entities.Event
	signups []entities.Signup
	checks  []entities.ConfirmationCheck
	// fail, when set, is returned by every call.
	fail error
}

func newMemStore() *memStore {
	return &memStore{events: map[uint]entities.Event{}}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) countLocked(eventID uint) int {
	n := 0
	for _, s := range m.signups {
		if s.EventID == eventID {
			n++
		}
	}
	return n
}

func (m *memStore) withCountLocked(e entities.Event) *entities.Event {
	e.ParticipantCount = m.countLocked(e.ID)
	return &e
}

type memEvents struct{ *memStore }

func (m memEvents) Create(_ context.Context, event *entities.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for _, e := range m.events {
		if e.Scope == event.Scope && e.IsOpen() && (e.Matches(event.Name) || e.Matches(event.ShortName)) {
			return output.ErrNameTaken
		}
	}
	event.ID = m.id()
	m.events[event.ID] = *event
	return nil
}

func (m memEvents) FindByID(_ context.Context, id uint) (*entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	e, ok := m.events[id]
	if !ok {
		return nil, output.ErrNotFound
	}
	return m.withCountLocked(e), nil
}

func (m memEvents) FindOpenByNameOrAlias(_ context.Context, query string, scope entities.Scope) (*entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, e := range m.events {
		if e.Scope == scope && e.IsOpen() && e.Matches(query) {
			return m.withCountLocked(e), nil
		}
	}
	return nil, output.ErrNotFound
}

func (m memEvents) ListOpen(_ context.Context, scope entities.Scope) ([]entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []entities.Event
	for _, e := range m.events {
		if e.Scope == scope && e.IsOpen() {
			out = append(out, *m.withCountLocked(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memEvents) Close(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	e, ok := m.events[id]
	if !ok || !e.IsOpen() {
		return output.ErrNotFound
	}
	e.State = entities.EventClosed
	m.events[id] = e
	return nil
}

type memSignups struct{ *memStore }

func (m memSignups) Add(_ context.Context, signup *entities.Signup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	e, ok := m.events[signup.EventID]
	if !ok || !e.IsOpen() {
		return output.ErrEventClosed
	}
	for _, s := range m.signups {
		if s.EventID == signup.EventID && s.UserID == signup.UserID {
			return output.ErrDuplicateSignup
		}
	}
	if e.Capacity != nil && m.countLocked(e.ID) >= *e.Capacity {
		return output.ErrCapacityReached
	}
	signup.ID = m.id()
	m.signups = append(m.signups, *signup)
	return nil
}

func (m memSignups) Find(_ context.Context, eventID uint, userID string) (*entities.Signup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, s := range m.signups {
		if s.EventID == eventID && s.UserID == userID {
			s := s
			return &s, nil
		}
	}
	return nil, output.ErrNotFound
}

func (m memSignups) FindByID(_ context.Context, id uint) (*entities.Signup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.signups {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, output.ErrNotFound
}

func (m memSignups) ListByEvent(_ context.Context, eventID uint) ([]entities.Signup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []entities.Signup
	for _, s := range m.signups {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memSignups) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for i, s := range m.signups {
		if s.ID == id {
			m.signups = append(m.signups[:i], m.signups[i+1:]...)
			return nil
		}
	}
	return output.ErrNotFound
}

type memChecks struct{ *memStore }

func (m memChecks) Create(_ context.Context, check *entities.ConfirmationCheck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	check.ID = m.id()
	m.checks = append(m.checks, *check)
	return nil
}

func (m memChecks) MostRecentForEvent(_ context.Context, eventID uint) (*entities.ConfirmationCheck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for i := len(m.checks) - 1; i >= 0; i-- {
		if m.checks[i].EventID == eventID {
			c := m.checks[i]
			return &c, nil
		}
	}
	return nil, output.ErrNotFound
}

func (m memChecks) ListByEvent(_ context.Context, eventID uint) ([]entities.ConfirmationCheck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.ConfirmationCheck
	for _, c := range m.checks {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeAuthorizer struct {
	moderators map[string]bool
	err        error
}

func (a *fakeAuthorizer) IsModerator(_ context.Context, userID string, _ entities.Scope) (bool, error) {
	if a.err != nil {
		return false, a.err
	}
	return a.moderators[userID], nil
}

type renderCall struct {
	MessageID string // "" for a new message
	Roster    entities.Roster
}

// fakeRenderer hands out message IDs "msg-1", "msg-2"... and records every render.
type fakeRenderer struct {
	mu      sync.Mutex
	n       int
	calls   []renderCall
	gone    map[string]bool
	failing bool
}

func (r *fakeRenderer) RenderRoster(_ context.Context, roster entities.Roster, messageID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return "", errors.New("discord unavailable")
	}
	r.calls = append(r.calls, renderCall{MessageID: messageID, Roster: roster})
	if messageID != "" {
		return messageID, nil
	}
	r.n++
	return "msg-" + strconv.Itoa(r.n), nil
}

func (r *fakeRenderer) LookupMessage(_ context.Context, _, messageID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone[messageID] {
		return "", output.ErrMessageNotFound
	}
	return messageID, nil
}

func (r *fakeRenderer) edits() []renderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []renderCall
	for _, c := range r.calls {
		if c.MessageID != "" {
			out = append(out, c)
		}
	}
	return out
}

type countingObserver struct {
	mu    sync.Mutex
	calls int
}

func (o *countingObserver) OnRosterChanged(context.Context, *entities.Event) {
	o.mu.Lock()
	o.calls++
	o.mu.Unlock()
}
