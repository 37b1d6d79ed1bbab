package queries

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPaymentQueryHandler retrieves a payment row by order.
type GetPaymentQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentQueryHandler creates a handler for payment queries.
// Requires a GORM database connection for query execution.
func NewGetPaymentQueryHandler(db *gorm.DB) GetPaymentQueryHandler {
	return GetPaymentQueryHandler{db: db}
}

// Handle executes the query to fetch an order's payment.
// Returns errs.ObjectNotFoundError when the order has no payment.
func (h GetPaymentQueryHandler) Handle(ctx context.Context, query GetPaymentQuery) (GetPaymentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPaymentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			amount,
			restaurant_share,
			delivery_fee,
			status,
			created_at
		FROM payments
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetPaymentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetPaymentQueryResponse{}, err
		}
		return GetPaymentQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID().String())
	}

	var resp GetPaymentQueryResponse
	var id, orderID uuid.UUID
	var createdAt time.Time

	err = rows.Scan(
		&id,
		&orderID,
		&resp.Amount,
		&resp.RestaurantShare,
		&resp.DeliveryFee,
		&resp.Status,
		&createdAt,
	)
	if err != nil {
		return GetPaymentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetPaymentQueryResponse{}, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetPaymentQueryResponse{}, err
	}
	resp.CreatedAt = createdAt

	return resp, nil
}
