// Package services contains stateless domain services that implement
// business policies spanning a single operation: currently the mock
// settlement policy splitting an order total into the restaurant share
// and the delivery fee.
package services
