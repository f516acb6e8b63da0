package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.ConfirmationCheckRepository = (*ConfirmationCheckRepository)(nil)

type ConfirmationCheckRepository struct {
	db *gorm.DB
}

func (r *ConfirmationCheckRepository) Create(ctx context.Context, check *entities.ConfirmationCheck) error {
	m := confirmationCheckModel{EventID: check.EventID, MessageID: check.MessageID}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create confirmation check: %w", err)
	}
	check.ID = m.ID
	check.CreatedAt = m.CreatedAt
	return nil
}

func (r *ConfirmationCheckRepository) MostRecentForEvent(ctx context.Context, eventID uint) (*entities.ConfirmationCheck, error) {
	var m confirmationCheckModel
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id DESC").Take(&m).Error
	if err != nil {
		return nil, fmt.Errorf("get latest confirmation check: %w", notFound(err))
	}
	c := confirmationCheckToDomain(m)
	return &c, nil
}

func (r *ConfirmationCheckRepository) ListByEvent(ctx context.Context, eventID uint) ([]entities.ConfirmationCheck, error) {
	var models []confirmationCheckModel
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list confirmation checks: %w", err)
	}
	out := make([]entities.ConfirmationCheck, len(models))
	for i := range models {
		out[i] = confirmationCheckToDomain(models[i])
	}
	return out, nil
}
