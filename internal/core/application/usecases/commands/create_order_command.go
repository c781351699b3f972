package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New("CreateOrderCommand must be created via NewCreateOrderCommand constructor")

// CreateOrderCommand places a customer order. Items and charges are already
// priced by the catalogue; the order computes its totals from them.
type CreateOrderCommand struct {
	orderID    kernel.UUID
	customerID kernel.UUID
	items      []order.Item
	address    order.Address
	pickup     *kernel.Point
	charges    order.Charges

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	items []order.Item,
	address order.Address,
	pickup *kernel.Point,
	charges order.Charges,
) (CreateOrderCommand, error) {
	c := CreateOrderCommand{
		pickup:  pickup,
		charges: charges,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setCustomerID(customerID),
		c.setItems(items),
		c.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return c, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

func (c CreateOrderCommand) Pickup() *kernel.Point {
	return c.pickup
}

func (c CreateOrderCommand) Charges() order.Charges {
	return c.charges
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return order.ErrItemsAreRequired
	}
	c.items = items
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.Address) error {
	if err := address.Point.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("address", err)
	}
	c.address = address
	return nil
}
