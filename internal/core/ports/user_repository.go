// Package ports defines repository and outbound interfaces for the domain layer.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	// The user must be valid and the username must not already exist.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByUsername retrieves a user aggregate by its unique username.
	// Returns errs.ObjectNotFoundError when no such user exists.
	GetByUsername(ctx context.Context, username string) (*user.User, error)

	// GetAllByRole retrieves every user carrying the given role.
	// Used by the notification registry to fan events out to a whole role.
	GetAllByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
