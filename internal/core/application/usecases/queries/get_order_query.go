package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its lines and full status history.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemView is one order line.
type OrderItemView struct {
	ProductID kernel.UUID
	VendorID  kernel.UUID
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	LineTotal kernel.Money
}

// OrderHistoryView is one status history line.
type OrderHistoryView struct {
	Status order.Status
	At     time.Time
	Actor  order.Actor
	Note   string
}

// GetOrderQueryResponse is the customer and operator view of an order.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	Number           string
	CustomerID       kernel.UUID
	Status           order.Status
	DeliveryPersonID *kernel.UUID
	Destination      kernel.Point
	AddressText      string
	Pickup           *kernel.Point
	Pricing          order.Pricing
	Items            []OrderItemView
	History          []OrderHistoryView
	CreatedAt        time.Time
	ReadyAt          *time.Time
	Proof            string
	CancelReason     string
}
