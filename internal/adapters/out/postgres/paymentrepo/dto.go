// Package paymentrepo provides data transfer objects and mapping functions for payment persistence.
package paymentrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for persisting payments.
// The unique index on order_id enforces at most one payment per order.
type PaymentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Amount          float64
	RestaurantShare float64
	DeliveryFee     float64
	Status          string
	CreatedAt       time.Time
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment domain aggregate to its database representation.
func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		Amount:          aggregate.Amount(),
		RestaurantShare: aggregate.RestaurantShare(),
		DeliveryFee:     aggregate.DeliveryFee(),
		Status:          aggregate.Status(),
		CreatedAt:       aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a payment domain aggregate.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, orderID, dto.Amount, dto.RestaurantShare, dto.DeliveryFee, dto.Status, dto.CreatedAt)
}
