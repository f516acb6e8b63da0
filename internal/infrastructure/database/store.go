package database

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"eventbot/internal/ports/output"
)

// NewRepositories builds the Postgres-backed repositories sharing pool.
func NewRepositories(pool *pgxpool.Pool) output.Repositories {
	return output.Repositories{
		Events:             NewEventRepository(pool),
		Signups:            NewSignupRepository(pool),
		ConfirmationChecks: NewConfirmationCheckRepository(pool),
		Pinger:             pool,
	}
}
