package order

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// LineItem is a value object referencing a menu item and a quantity.
// Line items are captured when the order is created and never change
// afterwards; the order's total is a snapshot of the referenced prices
// at creation time.
type LineItem struct {
	menuItemID kernel.UUID
	quantity   int
}

// NewLineItem creates a line item for the given menu item and quantity.
// Quantity must be at least 1.
func NewLineItem(menuItemID kernel.UUID, quantity int) (LineItem, error) {
	if err := menuItemID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	return LineItem{
		menuItemID: menuItemID,
		quantity:   quantity,
	}, nil
}

// MenuItemID returns the referenced menu item's identifier.
func (li LineItem) MenuItemID() kernel.UUID {
	return li.menuItemID
}

// Quantity returns how many units of the item were ordered.
func (li LineItem) Quantity() int {
	return li.quantity
}
