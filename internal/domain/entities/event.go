package entities

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// EventState is the lifecycle state of an event. Events are never deleted, only closed.
type EventState string

const (
	EventOpen   EventState = "open"
	EventClosed EventState = "closed"
)

// Scope is the (guild, channel) pair in which event names must be unique.
type Scope struct {
	GuildID   string
	ChannelID string
}

type Event struct {
	ID        uint
	Name      string
	ShortName string
	Scope     Scope
	Capacity  *int // nil = unlimited
	State     EventState
	CreatedBy string
	CreatedAt time.Time
	ClosedAt  time.Time

	// ParticipantCount is filled by repositories when the event is read.
	ParticipantCount int
}

func (e *Event) IsOpen() bool {
	return e.State == EventOpen
}

// SpaceLimited reports whether the event has a capacity.
func (e *Event) SpaceLimited() bool {
	return e.Capacity != nil
}

func (e *Event) IsFull() bool {
	return e.SpaceLimited() && e.ParticipantCount >= *e.Capacity
}

// Matches reports whether query designates the event by name or short name.
func (e *Event) Matches(query string) bool {
	key := NameKey(query)
	return key != "" && (NameKey(e.Name) == key || NameKey(e.ShortName) == key)
}

// DisplayName is the name users should type to target the event: the full name,
// unless another open event in open claims it, in which case the short name.
func (e *Event) DisplayName(open []Event) string {
	for i := range open {
		other := &open[i]
		if other.ID == e.ID {
			continue
		}
		if other.Matches(e.Name) {
			return e.ShortName
		}
	}
	return e.Name
}

// NameKey normalises an event name or short name for comparison. Name matching is
// case-insensitive everywhere, so every store compares on this key.
func NameKey(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}
