package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order from the orders, order_items and
// order_status_history tables.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or an ObjectNotFoundError. Items are returned in
// line order and history in the order it was written.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	resp, err := h.readOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if resp.Items, err = h.readItems(db, orderID); err != nil {
		return nil, err
	}
	if resp.History, err = h.readHistory(db, orderID); err != nil {
		return nil, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(db *gorm.DB, orderID uuid.UUID) (*GetOrderQueryResponse, error) {
	var (
		resp             GetOrderQueryResponse
		id, customerID   uuid.UUID
		deliveryPersonID uuid.NullUUID
		status           string
		lng, lat         float64
		pickupLng        sql.NullFloat64
		pickupLat        sql.NullFloat64
		pricing          [5]int64
		readyAt          sql.NullTime
	)

	err := db.Raw(`
		SELECT
			id,
			number,
			customer_id,
			status,
			delivery_person_id,
			delivery_lng,
			delivery_lat,
			delivery_text,
			pickup_lng,
			pickup_lat,
			subtotal,
			delivery_fee,
			tax,
			discount,
			total,
			created_at,
			ready_at,
			proof,
			cancel_reason
		FROM orders
		WHERE id = ?
	`, orderID).Row().Scan(
		&id,
		&resp.Number,
		&customerID,
		&status,
		&deliveryPersonID,
		&lng,
		&lat,
		&resp.AddressText,
		&pickupLng,
		&pickupLat,
		&pricing[0],
		&pricing[1],
		&pricing[2],
		&pricing[3],
		&pricing[4],
		&resp.CreatedAt,
		&readyAt,
		&resp.Proof,
		&resp.CancelReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("orderID", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return nil, err
	}
	if deliveryPersonID.Valid {
		agentID, idErr := kernel.UUIDFromBytes(deliveryPersonID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.DeliveryPersonID = &agentID
	}
	if resp.Status, err = order.ParseStatus(status); err != nil {
		return nil, err
	}
	if resp.Destination, err = kernel.NewPoint(lng, lat); err != nil {
		return nil, err
	}
	if pickupLng.Valid && pickupLat.Valid {
		p, pointErr := kernel.NewPoint(pickupLng.Float64, pickupLat.Float64)
		if pointErr != nil {
			return nil, pointErr
		}
		resp.Pickup = &p
	}
	if readyAt.Valid {
		at := readyAt.Time.UTC()
		resp.ReadyAt = &at
	}

	resp.Pricing = order.Pricing{
		Subtotal:    kernel.Money(pricing[0]),
		DeliveryFee: kernel.Money(pricing[1]),
		Tax:         kernel.Money(pricing[2]),
		Discount:    kernel.Money(pricing[3]),
		Total:       kernel.Money(pricing[4]),
	}
	resp.CreatedAt = resp.CreatedAt.UTC()
	return &resp, nil
}

func (h GetOrderQueryHandler) readItems(db *gorm.DB, orderID uuid.UUID) ([]OrderItemView, error) {
	rows, err := db.Raw(`
		SELECT
			product_id,
			vendor_id,
			name,
			quantity,
			unit_price,
			line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item                 OrderItemView
			productID, vendorID  uuid.UUID
			unitPrice, lineTotal int64
		)
		if err = rows.Scan(&productID, &vendorID, &item.Name, &item.Quantity, &unitPrice, &lineTotal); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if item.VendorID, err = kernel.UUIDFromBytes(vendorID[:]); err != nil {
			return nil, err
		}
		item.UnitPrice = kernel.Money(unitPrice)
		item.LineTotal = kernel.Money(lineTotal)
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) readHistory(db *gorm.DB, orderID uuid.UUID) ([]OrderHistoryView, error) {
	rows, err := db.Raw(`
		SELECT
			status,
			"at",
			actor,
			note
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY seq
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]OrderHistoryView, 0)
	for rows.Next() {
		var (
			entry         OrderHistoryView
			status, actor string
		)
		if err = rows.Scan(&status, &entry.At, &actor, &entry.Note); err != nil {
			return nil, err
		}
		if entry.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		entry.Actor = order.Actor(actor)
		entry.At = entry.At.UTC()
		history = append(history, entry)
	}

	return history, rows.Err()
}
