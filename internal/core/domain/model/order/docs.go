// Package order provides domain entities and business logic for order
// management in the food delivery system. It implements the Order aggregate
// root with lifecycle management, per-role authorization, and state transitions.
//
// The package includes:
//   - Order: The aggregate root managing identity, line items, totals, and lifecycle
//   - Status: A state machine enforcing the fixed forward-only transition chain
//   - LineItem: A value object referencing a menu item and quantity
//   - Actor: The identity and role attempting an operation
//
// Key business rules:
//   - Status follows placed -> accepted -> assigned_to_delivery -> picked_up -> delivered
//   - Transitions never move backward or skip states; delivered is terminal
//   - The total amount is fixed at creation from the menu prices of that moment
//   - A delivery agent claiming an unassigned order is recorded as its agent
//     atomically with the picked_up transition
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
