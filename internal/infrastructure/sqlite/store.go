package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eventbot/internal/ports/output"
)

// Store is a single-file SQLite backend, for local runs and small servers.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates it.
//
// The pool is limited to one connection: SQLite has a single writer anyway, and it
// makes every admission transaction run alone.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(
		sqlite.Open(path),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	log.Println("✅ SQLite database connected.")

	if err := db.AutoMigrate(&eventModel{}, &signupModel{}, &confirmationCheckModel{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	log.Println("✅ SQLite database migrated.")

	return &Store{db: db}, nil
}

// Repositories exposes the store through the output ports.
func (s *Store) Repositories() output.Repositories {
	return output.Repositories{
		Events:             &EventRepository{db: s.db},
		Signups:            &SignupRepository{db: s.db},
		ConfirmationChecks: &ConfirmationCheckRepository{db: s.db},
		Pinger:             s,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return output.ErrNotFound
	}
	return err
}
