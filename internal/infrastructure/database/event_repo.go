package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

const selectEvents = `
	SELECT e.id, e.guild_id, e.channel_id, e.name, e.short_name, e.capacity, e.state,
	       e.created_by, e.created_at, e.closed_at,
	       (SELECT COUNT(*) FROM signups s WHERE s.event_id = e.id) AS participant_count
	FROM events e`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Create inserts an open event. The scope's advisory lock serialises creations so
// the cross-field name check and the insert cannot interleave with another create.
func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	keys := []string{entities.NameKey(event.Name), entities.NameKey(event.ShortName)}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text || '/' || $2::text))`,
			event.Scope.GuildID, event.Scope.ChannelID); err != nil {
			return fmt.Errorf("lock scope: %w", err)
		}
		var taken bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM events
				WHERE guild_id = $1 AND channel_id = $2 AND state = 'open'
				  AND (name_key = ANY($3) OR short_name_key = ANY($3))
			)`, event.Scope.GuildID, event.Scope.ChannelID, keys).Scan(&taken)
		if err != nil {
			return fmt.Errorf("check names: %w", err)
		}
		if taken {
			return output.ErrNameTaken
		}
		var row eventRow
		err = tx.QueryRow(ctx, `
			INSERT INTO events (guild_id, channel_id, name, short_name, name_key, short_name_key,
			                    capacity, state, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'open', $8)
			RETURNING id, created_at`,
			event.Scope.GuildID, event.Scope.ChannelID, event.Name, event.ShortName,
			keys[0], keys[1], capacityToPg(event.Capacity), event.CreatedBy,
		).Scan(&row.ID, &row.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return output.ErrNameTaken
			}
			return fmt.Errorf("insert: %w", err)
		}
		event.ID = uint(row.ID)
		event.State = entities.EventOpen
		event.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
		return nil
	})
	if err != nil {
		if errors.Is(err, output.ErrNameTaken) {
			return err
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*entities.Event, error) {
	return r.findOne(ctx, "get event by id", selectEvents+` WHERE e.id = $1`, int64(id))
}

func (r *EventRepository) FindOpenByNameOrAlias(ctx context.Context, query string, scope entities.Scope) (*entities.Event, error) {
	return r.findOne(ctx, "get open event by name", selectEvents+`
		WHERE e.guild_id = $1 AND e.channel_id = $2 AND e.state = 'open'
		  AND (e.name_key = $3 OR e.short_name_key = $3)
		ORDER BY e.id
		LIMIT 1`, scope.GuildID, scope.ChannelID, entities.NameKey(query))
}

func (r *EventRepository) findOne(ctx context.Context, op, sql string, args ...any) (*entities.Event, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	e := eventToDomain(row)
	return &e, nil
}

func (r *EventRepository) ListOpen(ctx context.Context, scope entities.Scope) ([]entities.Event, error) {
	rows, err := r.pool.Query(ctx, selectEvents+`
		WHERE e.guild_id = $1 AND e.channel_id = $2 AND e.state = 'open'
		ORDER BY e.id`, scope.GuildID, scope.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("list open events: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		return nil, fmt.Errorf("list open events: %w", err)
	}
	out := make([]entities.Event, len(collected))
	for i := range collected {
		out[i] = eventToDomain(collected[i])
	}
	return out, nil
}

func (r *EventRepository) Close(ctx context.Context, id uint) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events SET state = 'closed', closed_at = now()
		WHERE id = $1 AND state = 'open'`, int64(id))
	if err != nil {
		return fmt.Errorf("close event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return output.ErrNotFound
	}
	return nil
}
