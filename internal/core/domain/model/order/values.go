package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Actor is the role that requested a status change. It is recorded in the
// status history.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorVendor   Actor = "vendor"
	ActorAgent    Actor = "agent"
	ActorAdmin    Actor = "admin"
	ActorSystem   Actor = "system"
)

func (a Actor) Validate() error {
	switch a {
	case ActorCustomer, ActorVendor, ActorAgent, ActorAdmin, ActorSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("%q is not a known role", string(a)))
	}
}

// Item is one order line. LineTotal is always Quantity * UnitPrice.
type Item struct {
	ProductID kernel.UUID
	VendorID  kernel.UUID
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	LineTotal kernel.Money
}

func NewItem(productID, vendorID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(productID.Validate(), vendorID.Validate(), quantityErr, unitPrice.ValidateAmount("unitPrice")); err != nil {
		return Item{}, err
	}

	lineTotal, err := unitPrice.Times(quantity, "lineTotal")
	if err != nil {
		return Item{}, err
	}

	return Item{
		ProductID: productID,
		VendorID:  vendorID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: lineTotal,
	}, nil
}

// Address is the delivery destination.
type Address struct {
	Point kernel.Point
	Text  string
}

func NewAddress(point kernel.Point, text string) (Address, error) {
	if err := point.Validate(); err != nil {
		return Address{}, err
	}
	return Address{Point: point, Text: text}, nil
}

// Charges are the caller-supplied parts of the price.
type Charges struct {
	DeliveryFee kernel.Money
	Tax         kernel.Money
	Discount    kernel.Money
}

// Pricing is computed once at creation. Total never goes below zero and no
// component exceeds kernel.MaxMoney.
type Pricing struct {
	Subtotal    kernel.Money
	DeliveryFee kernel.Money
	Tax         kernel.Money
	Discount    kernel.Money
	Total       kernel.Money
}

func newPricing(items []Item, charges Charges) (Pricing, error) {
	if err := errors.Join(
		charges.DeliveryFee.ValidateAmount("deliveryFee"),
		charges.Tax.ValidateAmount("tax"),
		charges.Discount.ValidateAmount("discount"),
	); err != nil {
		return Pricing{}, err
	}

	var (
		subtotal kernel.Money
		err      error
	)
	for _, item := range items {
		if subtotal, err = subtotal.Plus(item.LineTotal, "subtotal"); err != nil {
			return Pricing{}, err
		}
	}

	gross, err := subtotal.Plus(charges.DeliveryFee, "total")
	if err != nil {
		return Pricing{}, err
	}
	if gross, err = gross.Plus(charges.Tax, "total"); err != nil {
		return Pricing{}, err
	}
	total := gross - charges.Discount
	if total < 0 {
		total = 0
	}

	return Pricing{
		Subtotal:    subtotal,
		DeliveryFee: charges.DeliveryFee,
		Tax:         charges.Tax,
		Discount:    charges.Discount,
		Total:       total,
	}, nil
}

// HistoryEntry is one line of the append-only status log. Seq starts at 1.
type HistoryEntry struct {
	Seq    int
	Status Status
	At     time.Time
	Actor  Actor
	Note   string
}

// StatusChanged is raised on every accepted transition.
type StatusChanged struct {
	OrderID kernel.UUID
	Status  Status
	At      time.Time
	Actor   Actor
	Note    string
	AgentID *kernel.UUID
}
