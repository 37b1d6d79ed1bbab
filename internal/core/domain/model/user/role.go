package user

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Role represents a user's function in the system. Every authorization
// decision is gated by the role, and a role never changes after the user
// is created.
type Role string

const (
	// RoleAdmin may perform any operation, including any order status transition.
	RoleAdmin Role = "admin"

	// RoleRestaurant owns menu items and accepts orders placed against it.
	RoleRestaurant Role = "restaurant"

	// RoleCustomer places orders; customers never transition order statuses.
	RoleCustomer Role = "customer"

	// RoleDeliveryAgent picks up and delivers orders, claiming unassigned ones.
	RoleDeliveryAgent Role = "delivery_agent"
)

// getValidRoles returns the set of valid roles.
// Only valid roles are included to support validation.
func getValidRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleAdmin:         {},
		RoleRestaurant:    {},
		RoleCustomer:      {},
		RoleDeliveryAgent: {},
	}
}

// ParseRole converts a string into a Role.
// Returns an error if the string does not name a valid role.
// Used when reconstructing users from persistence or parsing API input.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks that the Role value is one of the defined roles.
func (r Role) Validate() error {
	if _, ok := getValidRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}
