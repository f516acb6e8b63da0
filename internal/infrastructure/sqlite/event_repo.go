package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db *gorm.DB
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	keys := []string{entities.NameKey(event.Name), entities.NameKey(event.ShortName)}
	m := eventModel{
		GuildID:      event.Scope.GuildID,
		ChannelID:    event.Scope.ChannelID,
		Name:         event.Name,
		ShortName:    event.ShortName,
		NameKey:      keys[0],
		ShortNameKey: keys[1],
		Capacity:     event.Capacity,
		State:        string(entities.EventOpen),
		CreatedBy:    event.CreatedBy,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		err := tx.Model(&eventModel{}).
			Where("guild_id = ? AND channel_id = ? AND state = ?", m.GuildID, m.ChannelID, m.State).
			Where("(name_key IN ? OR short_name_key IN ?)", keys, keys).
			Count(&taken).Error
		if err != nil {
			return fmt.Errorf("check names: %w", err)
		}
		if taken > 0 {
			return output.ErrNameTaken
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		if err == output.ErrNameTaken {
			return err
		}
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = m.ID
	event.State = entities.EventOpen
	event.CreatedAt = m.CreatedAt
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*entities.Event, error) {
	var m eventModel
	if err := r.db.WithContext(ctx).Take(&m, id).Error; err != nil {
		return nil, fmt.Errorf("get event by id: %w", notFound(err))
	}
	return r.withCount(ctx, m)
}

func (r *EventRepository) FindOpenByNameOrAlias(ctx context.Context, query string, scope entities.Scope) (*entities.Event, error) {
	key := entities.NameKey(query)
	var m eventModel
	err := r.db.WithContext(ctx).
		Where("guild_id = ? AND channel_id = ? AND state = ?", scope.GuildID, scope.ChannelID, string(entities.EventOpen)).
		Where("(name_key = ? OR short_name_key = ?)", key, key).
		Order("id").
		Take(&m).Error
	if err != nil {
		return nil, fmt.Errorf("get open event by name: %w", notFound(err))
	}
	return r.withCount(ctx, m)
}

func (r *EventRepository) ListOpen(ctx context.Context, scope entities.Scope) ([]entities.Event, error) {
	var models []eventModel
	err := r.db.WithContext(ctx).
		Where("guild_id = ? AND channel_id = ? AND state = ?", scope.GuildID, scope.ChannelID, string(entities.EventOpen)).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list open events: %w", err)
	}
	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}
	counts, err := r.participantCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Event, len(models))
	for i := range models {
		out[i] = eventToDomain(models[i], counts[models[i].ID])
	}
	return out, nil
}

func (r *EventRepository) Close(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&eventModel{}).
		Where("id = ? AND state = ?", id, string(entities.EventOpen)).
		Updates(map[string]any{"state": string(entities.EventClosed), "closed_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("close event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return output.ErrNotFound
	}
	return nil
}

func (r *EventRepository) withCount(ctx context.Context, m eventModel) (*entities.Event, error) {
	counts, err := r.participantCounts(ctx, []uint{m.ID})
	if err != nil {
		return nil, err
	}
	e := eventToDomain(m, counts[m.ID])
	return &e, nil
}

func (r *EventRepository) participantCounts(ctx context.Context, eventIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		EventID uint
		N       int
	}
	err := r.db.WithContext(ctx).Model(&signupModel{}).
		Select("event_id, COUNT(*) AS n").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	for _, row := range rows {
		counts[row.EventID] = row.N
	}
	return counts, nil
}
