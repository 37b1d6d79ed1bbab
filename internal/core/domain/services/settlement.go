package services

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
)

// Settlement split policy: 80% of an order's total goes to the restaurant,
// 20% is retained as the delivery fee.
const (
	restaurantShareRate = 0.8
	deliveryFeeRate     = 0.2
)

// SettlementService applies the mock settlement policy to an order total.
// In a real system this would integrate with a payment gateway; here it
// produces a completed Payment record with the fixed 80/20 split.
//
// Example:
//
//	settler := services.NewSettlementService()
//	p, err := settler.Settle(order.ID(), order.TotalAmount(), time.Now())
//	if err != nil {
//	    return fmt.Errorf("settlement failed: %w", err)
//	}
type SettlementService struct{}

// NewSettlementService creates the settlement domain service.
func NewSettlementService() SettlementService {
	return SettlementService{}
}

// Settle produces an immutable Payment for the given order total.
// The payment's amount equals the total; the split follows the fixed policy.
func (SettlementService) Settle(orderID kernel.UUID, totalAmount float64, now time.Time) (*payment.Payment, error) {
	return payment.NewPayment(
		kernel.NewUUID(),
		orderID,
		totalAmount,
		totalAmount*restaurantShareRate,
		totalAmount*deliveryFeeRate,
		now,
	)
}
