// Package queries contains read-only operations over the persistence layer.
// Implements the Query side of the CQRS architecture: handlers run raw SQL
// against the database and map rows into response structs, bypassing the
// aggregate repositories.
package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetMenuItemsQueryIsNotConstructed = errors.New(
	"GetMenuItemsQuery must be created via NewGetMenuItemsQuery constructor",
)

// GetMenuItemsQuery retrieves menu items, optionally filtered to a single
// restaurant. This is a public query: no acting user is required.
//
// Example:
//
//	query := NewGetMenuItemsQuery(&restaurantID)
//	handler := NewGetMenuItemsQueryHandler(db)
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list menu: %w", err)
//	}
type GetMenuItemsQuery struct {
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMenuItemsQuery creates a query to list menu items.
// restaurantID may be nil to list across all restaurants.
func NewGetMenuItemsQuery(restaurantID *kernel.UUID) (GetMenuItemsQuery, error) {
	if restaurantID != nil {
		if err := restaurantID.Validate(); err != nil {
			return GetMenuItemsQuery{}, err
		}
	}

	return GetMenuItemsQuery{
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMenuItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuItemsQueryIsNotConstructed)
}

// RestaurantID returns the restaurant filter, or nil when unfiltered.
func (q GetMenuItemsQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}

// GetMenuItemsQueryResponse represents a single menu item row.
type GetMenuItemsQueryResponse struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Description  string
	Price        float64
	IsAvailable  bool
}
