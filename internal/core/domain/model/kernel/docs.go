// Package kernel provides shared value objects used across all domain aggregates.
// It contains the UUID identifier type that users, menu items, orders, and
// payments are keyed by.
//
// Value objects in this package are immutable, validated on construction,
// and safe for concurrent use.
package kernel
