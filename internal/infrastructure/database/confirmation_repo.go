package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.ConfirmationCheckRepository = (*ConfirmationCheckRepository)(nil)

// ConfirmationCheckRepository stores the append-only log of confirmation checks.
type ConfirmationCheckRepository struct {
	pool *pgxpool.Pool
}

func NewConfirmationCheckRepository(pool *pgxpool.Pool) *ConfirmationCheckRepository {
	return &ConfirmationCheckRepository{pool: pool}
}

func (r *ConfirmationCheckRepository) Create(ctx context.Context, check *entities.ConfirmationCheck) error {
	var row confirmationCheckRow
	err := r.pool.QueryRow(ctx, `
		INSERT INTO confirmation_checks (event_id, message_id) VALUES ($1, $2)
		RETURNING id, created_at`, int64(check.EventID), check.MessageID).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return fmt.Errorf("create confirmation check: %w", err)
	}
	check.ID = uint(row.ID)
	check.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	return nil
}

// MostRecentForEvent orders by id: ids are assigned in creation order.
func (r *ConfirmationCheckRepository) MostRecentForEvent(ctx context.Context, eventID uint) (*entities.ConfirmationCheck, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, message_id, created_at FROM confirmation_checks
		WHERE event_id = $1 ORDER BY id DESC LIMIT 1`, int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("get latest confirmation check: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[confirmationCheckRow])
	if err != nil {
		return nil, fmt.Errorf("get latest confirmation check: %w", notFound(err))
	}
	c := confirmationCheckToDomain(row)
	return &c, nil
}

func (r *ConfirmationCheckRepository) ListByEvent(ctx context.Context, eventID uint) ([]entities.ConfirmationCheck, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, message_id, created_at FROM confirmation_checks
		WHERE event_id = $1 ORDER BY id`, int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("get confirmation checks: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[confirmationCheckRow])
	if err != nil {
		return nil, fmt.Errorf("get confirmation checks: %w", err)
	}
	out := make([]entities.ConfirmationCheck, len(collected))
	for i := range collected {
		out[i] = confirmationCheckToDomain(collected[i])
	}
	return out, nil
}
