package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMenuItemsQueryHandler retrieves menu item rows from the database.
type GetMenuItemsQueryHandler struct {
	db *gorm.DB
}

// NewGetMenuItemsQueryHandler creates a handler for menu listing queries.
// Requires a GORM database connection for query execution.
func NewGetMenuItemsQueryHandler(db *gorm.DB) GetMenuItemsQueryHandler {
	return GetMenuItemsQueryHandler{db: db}
}

// Handle executes the query to list menu items.
// Results are sorted by name for consistent output.
func (h GetMenuItemsQueryHandler) Handle(
	ctx context.Context,
	query GetMenuItemsQuery,
) ([]GetMenuItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			restaurant_id,
			name,
			description,
			price,
			is_available
		FROM menu_items
	`
	var args []any
	if query.RestaurantID() != nil {
		sql += " WHERE restaurant_id = ?"
		args = append(args, query.RestaurantID().Bytes())
	}
	sql += " ORDER BY name"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetMenuItemsQueryResponse, 0)
	for rows.Next() {
		var item GetMenuItemsQueryResponse
		var id, restaurantID uuid.UUID

		err = rows.Scan(
			&id,
			&restaurantID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.IsAvailable,
		)
		if err != nil {
			return nil, err
		}

		item.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		item.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:])
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
