// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are stored denormalized as a JSON column: they are immutable
// after placement and always read back as a whole.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID    uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryAgentID *uuid.UUID `gorm:"type:uuid;index"`
	Items           []byte     `gorm:"type:jsonb"`
	TotalAmount     float64
	Status          int `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// lineItemDTO is the JSON shape of one order line inside the items column.
type lineItemDTO struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var agentID *uuid.UUID
	if id := aggregate.DeliveryAgent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	lines := make([]lineItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		lines = append(lines, lineItemDTO{
			MenuItemID: item.MenuItemID().String(),
			Quantity:   item.Quantity(),
		})
	}
	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		DeliveryAgentID: agentID,
		Items:           itemsJSON,
		TotalAmount:     aggregate.TotalAmount(),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, optional agent
// assignment, and timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.DeliveryAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.DeliveryAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	var lines []lineItemDTO
	if err = json.Unmarshal(dto.Items, &lines); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(lines))
	for _, line := range lines {
		menuItemID, itemErr := kernel.UUIDFromString(line.MenuItemID)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewLineItem(menuItemID, line.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, customerID, restaurantID,
		agentID, items, dto.TotalAmount,
		order.Status(dto.Status), dto.CreatedAt, dto.UpdatedAt,
	)
}
