package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

const uniqueViolation = "23505"

type eventRow struct {
	ID               int64              `db:"id"`
	GuildID          string             `db:"guild_id"`
	ChannelID        string             `db:"channel_id"`
	Name             string             `db:"name"`
	ShortName        string             `db:"short_name"`
	Capacity         pgtype.Int4        `db:"capacity"`
	State            string             `db:"state"`
	CreatedBy        string             `db:"created_by"`
	CreatedAt        pgtype.Timestamptz `db:"created_at"`
	ClosedAt         pgtype.Timestamptz `db:"closed_at"`
	ParticipantCount int64              `db:"participant_count"`
}

type signupRow struct {
	ID        int64              `db:"id"`
	EventID   int64              `db:"event_id"`
	UserID    string             `db:"user_id"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
}

type confirmationCheckRow struct {
	ID        int64              `db:"id"`
	EventID   int64              `db:"event_id"`
	MessageID string             `db:"message_id"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func capacityToPg(capacity *int) pgtype.Int4 {
	if capacity == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*capacity), Valid: true}
}

func eventToDomain(r eventRow) entities.Event {
	e := entities.Event{
		ID:               uint(r.ID),
		Name:             r.Name,
		ShortName:        r.ShortName,
		Scope:            entities.Scope{GuildID: r.GuildID, ChannelID: r.ChannelID},
		State:            entities.EventState(r.State),
		CreatedBy:        r.CreatedBy,
		CreatedAt:        pgtypeTimestamptzToTime(r.CreatedAt),
		ClosedAt:         pgtypeTimestamptzToTime(r.ClosedAt),
		ParticipantCount: int(r.ParticipantCount),
	}
	if r.Capacity.Valid {
		c := int(r.Capacity.Int32)
		e.Capacity = &c
	}
	return e
}

func signupToDomain(r signupRow) entities.Signup {
	return entities.Signup{
		ID:        uint(r.ID),
		EventID:   uint(r.EventID),
		UserID:    r.UserID,
		CreatedAt: pgtypeTimestamptzToTime(r.CreatedAt),
	}
}

func confirmationCheckToDomain(r confirmationCheckRow) entities.ConfirmationCheck {
	return entities.ConfirmationCheck{
		ID:        uint(r.ID),
		EventID:   uint(r.EventID),
		MessageID: r.MessageID,
		CreatedAt: pgtypeTimestamptzToTime(r.CreatedAt),
	}
}

// notFound turns pgx.ErrNoRows into output.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return output.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
