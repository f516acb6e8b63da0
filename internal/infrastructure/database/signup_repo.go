package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.SignupRepository = (*SignupRepository)(nil)

// SignupRepository implements output.SignupRepository with pgx.
type SignupRepository struct {
	pool *pgxpool.Pool
}

// NewSignupRepository creates a SignupRepository.
func NewSignupRepository(pool *pgxpool.Pool) *SignupRepository {
	return &SignupRepository{pool: pool}
}

// Add locks the event row, so admissions to one event are serialised and at most
// capacity signups can exist. The unique constraint backs the duplicate check.
func (r *SignupRepository) Add(ctx context.Context, signup *entities.Signup) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var (
			state    string
			capacity pgtype.Int4
		)
		err := tx.QueryRow(ctx, `SELECT state, capacity FROM events WHERE id = $1 FOR UPDATE`,
			int64(signup.EventID)).Scan(&state, &capacity)
		if errors.Is(err, pgx.ErrNoRows) {
			return output.ErrEventClosed
		}
		if err != nil {
			return fmt.Errorf("lock event: %w", err)
		}
		if entities.EventState(state) != entities.EventOpen {
			return output.ErrEventClosed
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM signups WHERE event_id = $1 AND user_id = $2)`,
			int64(signup.EventID), signup.UserID).Scan(&exists); err != nil {
			return fmt.Errorf("check signup: %w", err)
		}
		if exists {
			return output.ErrDuplicateSignup
		}

		if capacity.Valid {
			var count int64
			if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM signups WHERE event_id = $1`,
				int64(signup.EventID)).Scan(&count); err != nil {
				return fmt.Errorf("count signups: %w", err)
			}
			if count >= int64(capacity.Int32) {
				return output.ErrCapacityReached
			}
		}

		var row signupRow
		err = tx.QueryRow(ctx, `
			INSERT INTO signups (event_id, user_id) VALUES ($1, $2)
			ON CONFLICT (event_id, user_id) DO NOTHING
			RETURNING id, created_at`, int64(signup.EventID), signup.UserID).Scan(&row.ID, &row.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return output.ErrDuplicateSignup
		}
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		signup.ID = uint(row.ID)
		signup.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
		return nil
	})
	if err != nil {
		if errors.Is(err, output.ErrEventClosed) || errors.Is(err, output.ErrDuplicateSignup) || errors.Is(err, output.ErrCapacityReached) {
			return err
		}
		return fmt.Errorf("add signup: %w", err)
	}
	return nil
}

func (r *SignupRepository) Find(ctx context.Context, eventID uint, userID string) (*entities.Signup, error) {
	return r.findOne(ctx, "get signup by event and user", `
		SELECT id, event_id, user_id, created_at FROM signups
		WHERE event_id = $1 AND user_id = $2`, int64(eventID), userID)
}

func (r *SignupRepository) FindByID(ctx context.Context, id uint) (*entities.Signup, error) {
	return r.findOne(ctx, "get signup by id", `
		SELECT id, event_id, user_id, created_at FROM signups WHERE id = $1`, int64(id))
}

func (r *SignupRepository) findOne(ctx context.Context, op, sql string, args ...any) (*entities.Signup, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[signupRow])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	s := signupToDomain(row)
	return &s, nil
}

func (r *SignupRepository) ListByEvent(ctx context.Context, eventID uint) ([]entities.Signup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, user_id, created_at FROM signups
		WHERE event_id = $1 ORDER BY id`, int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("get signups by event id: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[signupRow])
	if err != nil {
		return nil, fmt.Errorf("get signups by event id: %w", err)
	}
	out := make([]entities.Signup, len(collected))
	for i := range collected {
		out[i] = signupToDomain(collected[i])
	}
	return out, nil
}

func (r *SignupRepository) Delete(ctx context.Context, id uint) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM signups WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return output.ErrNotFound
	}
	return nil
}
