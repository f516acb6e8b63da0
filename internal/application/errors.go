package application

import (
	"context"
	"errors"
	"fmt"
	"log"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

// storageErr marks err as a storage failure unless it already carries a domain code.
func storageErr(op string, err error) error {
	if domain.Code(err) != "" {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorageUnavailable, op, err)
}

// authorize fails closed: a negative answer and an authorizer failure both yield
// domain.ErrUnauthorized.
func authorize(ctx context.Context, authz output.Authorizer, userID string, scope entities.Scope) error {
	ok, err := authz.IsModerator(ctx, userID, scope)
	if err != nil {
		log.Printf("⚠️ Authorization check failed (user=%s, guild=%s): %v", userID, scope.GuildID, err)
		return domain.ErrUnauthorized
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, output.ErrNotFound)
}
