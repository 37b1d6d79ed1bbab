// Package user provides the User aggregate and the Role value object.
//
// Roles partition the system's actors: admin, restaurant, customer, and
// delivery_agent. A user's role is assigned once at registration and gates
// every authorization decision made by the application layer and the order
// lifecycle rules.
package user
