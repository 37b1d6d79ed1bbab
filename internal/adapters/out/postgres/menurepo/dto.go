// Package menurepo provides data transfer objects and mapping functions for menu item persistence.
package menurepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// MenuItemDTO represents the database structure for persisting menu items.
// Indexed by restaurant for the public menu listing.
type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	Description  string
	Price        float64
	IsAvailable  bool
}

// TableName specifies the database table name for menu item entities.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// fromDomain converts a menu item domain aggregate to its database representation.
func fromDomain(aggregate *menu.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:           aggregate.ID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		Name:         aggregate.Name(),
		Description:  aggregate.Description(),
		Price:        aggregate.Price(),
		IsAvailable:  aggregate.IsAvailable(),
	}
}

// toDomain converts a database DTO to a menu item domain aggregate.
func toDomain(dto MenuItemDTO) (*menu.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return menu.RestoreMenuItem(id, restaurantID, dto.Name, dto.Description, dto.Price, dto.IsAvailable)
}
