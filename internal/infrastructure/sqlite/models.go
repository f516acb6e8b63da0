package sqlite

import (
	"time"

	"eventbot/internal/domain/entities"
)

type eventModel struct {
	ID           uint   `gorm:"primaryKey"`
	GuildID      string `gorm:"not null;index:idx_events_scope"`
	ChannelID    string `gorm:"not null;index:idx_events_scope"`
	Name         string `gorm:"not null"`
	ShortName    string `gorm:"not null"`
	NameKey      string `gorm:"not null"`
	ShortNameKey string `gorm:"not null"`
	Capacity     *int
	State        string `gorm:"not null;default:'open'"`
	CreatedBy    string `gorm:"not null"`
	CreatedAt    time.Time
	ClosedAt     *time.Time
}

func (eventModel) TableName() string { return "events" }

// Signups are unique per (event_id, user_id).
type signupModel struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;uniqueIndex:idx_signups_event_user"`
	UserID    string `gorm:"not null;uniqueIndex:idx_signups_event_user"`
	CreatedAt time.Time
}

func (signupModel) TableName() string { return "signups" }

type confirmationCheckModel struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	MessageID string `gorm:"not null"`
	CreatedAt time.Time
}

func (confirmationCheckModel) TableName() string { return "confirmation_checks" }

func eventToDomain(m eventModel, participants int) entities.Event {
	e := entities.Event{
		ID:               m.ID,
		Name:             m.Name,
		ShortName:        m.ShortName,
		Scope:            entities.Scope{GuildID: m.GuildID, ChannelID: m.ChannelID},
		Capacity:         m.Capacity,
		State:            entities.EventState(m.State),
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
		ParticipantCount: participants,
	}
	if m.ClosedAt != nil {
		e.ClosedAt = *m.ClosedAt
	}
	return e
}

func signupToDomain(m signupModel) entities.Signup {
	return entities.Signup{ID: m.ID, EventID: m.EventID, UserID: m.UserID, CreatedAt: m.CreatedAt}
}

func confirmationCheckToDomain(m confirmationCheckModel) entities.ConfirmationCheck {
	return entities.ConfirmationCheck{ID: m.ID, EventID: m.EventID, MessageID: m.MessageID, CreatedAt: m.CreatedAt}
}
