package menu

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Domain errors for menu item operations.
var (
	// ErrNameIsRequired is returned when attempting to create a menu item without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrMenuItemIsNotConstructed is returned when using an improperly initialized MenuItem.
	ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")
)

// MenuItem represents a dish offered by exactly one restaurant.
// It is an aggregate root owned by the restaurant user identified by
// RestaurantID; all order line items must reference menu items belonging
// to the order's restaurant.
//
// Business rules:
//   - Must have a valid UUID, a valid owning restaurant ID, and a non-empty name
//   - Price must be non-negative
//   - Ownership never changes; only the owning restaurant (or an admin) may edit it
type MenuItem struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	description  string
	price        float64
	isAvailable  bool

	guard guard.ConstructorGuard
}

// NewMenuItem creates a new MenuItem owned by the given restaurant.
// This is the only way to create a valid MenuItem instance.
func NewMenuItem(id, restaurantID kernel.UUID, name, description string, price float64, isAvailable bool) (*MenuItem, error) {
	item := &MenuItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setRestaurantID(restaurantID),
		item.setName(name),
		item.setPrice(price),
	); err != nil {
		return nil, err
	}

	item.description = description
	item.isAvailable = isAvailable
	return item, nil
}

// RestoreMenuItem reconstructs a MenuItem from persistence.
func RestoreMenuItem(id, restaurantID kernel.UUID, name, description string, price float64, isAvailable bool) (*MenuItem, error) {
	return NewMenuItem(id, restaurantID, name, description, price, isAvailable)
}

// Validate ensures the MenuItem instance was properly constructed through NewMenuItem.
func (m *MenuItem) Validate() error {
	if m == nil {
		return ErrMenuItemIsNotConstructed
	}
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

// ID returns the menu item's unique identifier.
func (m *MenuItem) ID() kernel.UUID {
	return m.id
}

// RestaurantID returns the identifier of the owning restaurant user.
func (m *MenuItem) RestaurantID() kernel.UUID {
	return m.restaurantID
}

// Name returns the item's display name.
func (m *MenuItem) Name() string {
	return m.name
}

// Description returns the item's description.
func (m *MenuItem) Description() string {
	return m.description
}

// Price returns the current unit price.
func (m *MenuItem) Price() float64 {
	return m.price
}

// IsAvailable reports whether the item can currently be ordered.
func (m *MenuItem) IsAvailable() bool {
	return m.isAvailable
}

// BelongsTo reports whether the menu item is owned by the given restaurant.
func (m *MenuItem) BelongsTo(restaurantID kernel.UUID) bool {
	return m.restaurantID.IsEqual(restaurantID)
}

// Edit replaces the mutable attributes of the menu item.
// Ownership is not editable; edits never affect totals of already placed orders,
// which snapshot prices at creation time.
func (m *MenuItem) Edit(name, description string, price float64, isAvailable bool) error {
	if name == "" {
		return ErrNameIsRequired
	}
	if price < 0 {
		return errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}

	m.name = name
	m.description = description
	m.price = price
	m.isAvailable = isAvailable
	return nil
}

func (m *MenuItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *MenuItem) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.restaurantID = id
	return nil
}

func (m *MenuItem) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	m.name = name
	return nil
}

func (m *MenuItem) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}
	m.price = price
	return nil
}
