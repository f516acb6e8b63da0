package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.SignupRepository = (*SignupRepository)(nil)

type SignupRepository struct {
	db *gorm.DB
}

// Add admits a participant. The open state, the duplicate and the capacity are all
// checked inside one transaction.
func (r *SignupRepository) Add(ctx context.Context, signup *entities.Signup) error {
	m := signupModel{EventID: signup.EventID, UserID: signup.UserID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev eventModel
		if err := tx.Take(&ev, signup.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return output.ErrEventClosed
			}
			return err
		}
		if ev.State != string(entities.EventOpen) {
			return output.ErrEventClosed
		}

		var dup int64
		if err := tx.Model(&signupModel{}).
			Where("event_id = ? AND user_id = ?", m.EventID, m.UserID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return output.ErrDuplicateSignup
		}

		if ev.Capacity != nil {
			var n int64
			if err := tx.Model(&signupModel{}).Where("event_id = ?", m.EventID).Count(&n).Error; err != nil {
				return err
			}
			if n >= int64(*ev.Capacity) {
				return output.ErrCapacityReached
			}
		}

		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return output.ErrDuplicateSignup
			}
			return err
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, output.ErrEventClosed),
		errors.Is(err, output.ErrDuplicateSignup),
		errors.Is(err, output.ErrCapacityReached):
		return err
	default:
		return fmt.Errorf("add signup: %w", err)
	}
	signup.ID = m.ID
	signup.CreatedAt = m.CreatedAt
	return nil
}

func (r *SignupRepository) Find(ctx context.Context, eventID uint, userID string) (*entities.Signup, error) {
	var m signupModel
	err := r.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).Take(&m).Error
	if err != nil {
		return nil, fmt.Errorf("get signup: %w", notFound(err))
	}
	s := signupToDomain(m)
	return &s, nil
}

func (r *SignupRepository) FindByID(ctx context.Context, id uint) (*entities.Signup, error) {
	var m signupModel
	if err := r.db.WithContext(ctx).Take(&m, id).Error; err != nil {
		return nil, fmt.Errorf("get signup by id: %w", notFound(err))
	}
	s := signupToDomain(m)
	return &s, nil
}

func (r *SignupRepository) ListByEvent(ctx context.Context, eventID uint) ([]entities.Signup, error) {
	var models []signupModel
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	out := make([]entities.Signup, len(models))
	for i := range models {
		out[i] = signupToDomain(models[i])
	}
	return out, nil
}

func (r *SignupRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&signupModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete signup: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return output.ErrNotFound
	}
	return nil
}
