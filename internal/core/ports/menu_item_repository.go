package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
)

// MenuItemRepository defines the persistence contract for menu item aggregates.
type MenuItemRepository interface {
	// Add persists a new menu item aggregate to storage.
	Add(ctx context.Context, aggregate *menu.MenuItem) error

	// Update persists changes to an existing menu item aggregate.
	Update(ctx context.Context, aggregate *menu.MenuItem) error

	// Delete removes a menu item aggregate from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a menu item aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*menu.MenuItem, error)
}
