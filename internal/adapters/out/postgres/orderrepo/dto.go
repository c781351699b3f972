// Package orderrepo maps the order aggregate to the orders, order_items and
// order_status_history tables.
package orderrepo

import (
	"time"

	"dispatch/internal/adapters/out/postgres/columns"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is one row of the orders table. Status is stored by name so the
// table stays readable from psql.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number           string    `gorm:"uniqueIndex"`
	CustomerID       uuid.UUID `gorm:"type:uuid;index"`
	VendorIDs        columns.StringArray
	Status           string     `gorm:"index"`
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`
	Address          AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Pickup           PickupDTO  `gorm:"embedded;embeddedPrefix:pickup_"`
	Pricing          PricingDTO `gorm:"embedded"`
	ReadyAt          *time.Time `gorm:"index"`
	Proof            string
	CancelReason     string
	CreatedAt        time.Time
	Version          int
	Items            []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History          []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Lng  float64
	Lat  float64
	Text string
}

// PickupDTO is NULL when the vendor location is unknown.
type PickupDTO struct {
	Lng *float64
	Lat *float64
}

type PricingDTO struct {
	Subtotal    int64
	DeliveryFee int64
	Tax         int64
	Discount    int64
	Total       int64
}

type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey;autoIncrement:false"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	VendorID  uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO is one append-only history line. Rows are inserted once and
// never updated.
type StatusHistoryDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey;autoIncrement:false"`
	Status  string
	At      time.Time
	Actor   string
	Note    string
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	var deliveryPersonID *uuid.UUID
	if id := o.DeliveryPerson(); id != nil {
		raw := id.Bytes()
		deliveryPersonID = &raw
	}

	var pickup PickupDTO
	if p := o.Pickup(); p != nil {
		lng, lat := p.Lng(), p.Lat()
		pickup = PickupDTO{Lng: &lng, Lat: &lat}
	}

	vendorIDs := make(columns.StringArray, 0, len(o.VendorIDs()))
	for _, id := range o.VendorIDs() {
		vendorIDs = append(vendorIDs, id.String())
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   o.ID().Bytes(),
			Position:  i,
			ProductID: item.ProductID.Bytes(),
			VendorID:  item.VendorID.Bytes(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: int64(item.UnitPrice),
			LineTotal: int64(item.LineTotal),
		})
	}

	history := make([]StatusHistoryDTO, 0, len(o.History()))
	for _, entry := range o.History() {
		history = append(history, StatusHistoryDTO{
			OrderID: o.ID().Bytes(),
			Seq:     entry.Seq,
			Status:  entry.Status.String(),
			At:      entry.At,
			Actor:   string(entry.Actor),
			Note:    entry.Note,
		})
	}

	pricing := o.Pricing()
	return OrderDTO{
		ID:               o.ID().Bytes(),
		Number:           o.Number(),
		CustomerID:       o.CustomerID().Bytes(),
		VendorIDs:        vendorIDs,
		Status:           o.Status().String(),
		DeliveryPersonID: deliveryPersonID,
		Address: AddressDTO{
			Lng:  o.Address().Point.Lng(),
			Lat:  o.Address().Point.Lat(),
			Text: o.Address().Text,
		},
		Pickup: pickup,
		Pricing: PricingDTO{
			Subtotal:    int64(pricing.Subtotal),
			DeliveryFee: int64(pricing.DeliveryFee),
			Tax:         int64(pricing.Tax),
			Discount:    int64(pricing.Discount),
			Total:       int64(pricing.Total),
		},
		ReadyAt:      o.ReadyAt(),
		Proof:        o.Proof(),
		CancelReason: o.CancelReason(),
		CreatedAt:    o.CreatedAt(),
		Version:      o.Version(),
		Items:        items,
		History:      history,
	}
}

// updateColumns lists the columns that change after creation. Items, address
// and pricing are immutable.
func (dto OrderDTO) updateColumns() map[string]any {
	return map[string]any{
		"status":             dto.Status,
		"delivery_person_id": dto.DeliveryPersonID,
		"ready_at":           dto.ReadyAt,
		"proof":              dto.Proof,
		"cancel_reason":      dto.CancelReason,
		"version":            dto.Version + 1,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var deliveryPerson *kernel.UUID
	if dto.DeliveryPersonID != nil {
		agentID, agentErr := kernel.UUIDFromBytes((*dto.DeliveryPersonID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		deliveryPerson = &agentID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewPoint(dto.Address.Lng, dto.Address.Lat)
	if err != nil {
		return nil, err
	}

	var pickup *kernel.Point
	if dto.Pickup.Lng != nil && dto.Pickup.Lat != nil {
		p, pointErr := kernel.NewPoint(*dto.Pickup.Lng, *dto.Pickup.Lat)
		if pointErr != nil {
			return nil, pointErr
		}
		pickup = &p
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(item.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		vendorID, itemErr := kernel.UUIDFromBytes(item.VendorID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, order.Item{
			ProductID: productID,
			VendorID:  vendorID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: kernel.Money(item.UnitPrice),
			LineTotal: kernel.Money(item.LineTotal),
		})
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		entryStatus, statusErr := order.ParseStatus(entry.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, order.HistoryEntry{
			Seq:    entry.Seq,
			Status: entryStatus,
			At:     entry.At,
			Actor:  order.Actor(entry.Actor),
			Note:   entry.Note,
		})
	}

	return order.RestoreOrder(order.State{
		ID:         id,
		Number:     dto.Number,
		CustomerID: customerID,
		Items:      items,
		Address:    order.Address{Point: destination, Text: dto.Address.Text},
		Pickup:     pickup,
		Pricing: order.Pricing{
			Subtotal:    kernel.Money(dto.Pricing.Subtotal),
			DeliveryFee: kernel.Money(dto.Pricing.DeliveryFee),
			Tax:         kernel.Money(dto.Pricing.Tax),
			Discount:    kernel.Money(dto.Pricing.Discount),
			Total:       kernel.Money(dto.Pricing.Total),
		},
		Status:         status,
		DeliveryPerson: deliveryPerson,
		History:        history,
		CreatedAt:      dto.CreatedAt,
		ReadyAt:        dto.ReadyAt,
		Proof:          dto.Proof,
		CancelReason:   dto.CancelReason,
		Version:        dto.Version,
	})
}
