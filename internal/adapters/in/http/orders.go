package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders - creates a new pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := fromAPIUUID(body.CustomerId)
	if err != nil {
		return s.fail(ctx, err)
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, line := range body.Items {
		productID, idErr := fromAPIUUID(line.ProductId)
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		vendorID, idErr := fromAPIUUID(line.VendorId)
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		item, itemErr := order.NewItem(productID, vendorID, line.Name, line.Quantity, kernel.Money(line.UnitPrice))
		if itemErr != nil {
			return s.fail(ctx, itemErr)
		}
		items = append(items, item)
	}

	destination, err := kernel.NewPoint(body.Address.Lng, body.Address.Lat)
	if err != nil {
		return s.fail(ctx, err)
	}
	address, err := order.NewAddress(destination, body.Address.Text)
	if err != nil {
		return s.fail(ctx, err)
	}

	var pickup *kernel.Point
	if body.Pickup != nil {
		p, pointErr := fromAPIPoint(*body.Pickup)
		if pointErr != nil {
			return s.fail(ctx, pointErr)
		}
		pickup = &p
	}

	charges := order.Charges{DeliveryFee: kernel.Money(body.DeliveryFee)}
	if body.Tax != nil {
		charges.Tax = kernel.Money(*body.Tax)
	}
	if body.Discount != nil {
		charges.Discount = kernel.Money(*body.Discount)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, items, address, pickup, charges)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{Id: orderID.Bytes(), Number: created.Number})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := fromAPIUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	o, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.Order{
		Id:               o.ID.Bytes(),
		Number:           o.Number,
		CustomerId:       o.CustomerID.Bytes(),
		Status:           o.Status.String(),
		DeliveryPersonId: toAPIUUID(o.DeliveryPersonID),
		Address: servers.Address{
			Lng:  o.Destination.Lng(),
			Lat:  o.Destination.Lat(),
			Text: o.AddressText,
		},
		Pricing: servers.Pricing{
			Subtotal:    int64(o.Pricing.Subtotal),
			DeliveryFee: int64(o.Pricing.DeliveryFee),
			Tax:         int64(o.Pricing.Tax),
			Discount:    int64(o.Pricing.Discount),
			Total:       int64(o.Pricing.Total),
		},
		Items:        make([]servers.OrderItem, len(o.Items)),
		History:      make([]servers.HistoryEntry, len(o.History)),
		CreatedAt:    o.CreatedAt,
		ReadyAt:      o.ReadyAt,
		Proof:        optionalString(o.Proof),
		CancelReason: optionalString(o.CancelReason),
	}
	if o.Pickup != nil {
		pickup := toAPIPoint(*o.Pickup)
		response.Pickup = &pickup
	}
	for i, item := range o.Items {
		response.Items[i] = servers.OrderItem{
			ProductId: item.ProductID.Bytes(),
			VendorId:  item.VendorID.Bytes(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: int64(item.UnitPrice),
			LineTotal: int64(item.LineTotal),
		}
	}
	for i, entry := range o.History {
		response.History[i] = servers.HistoryEntry{
			Status:    entry.Status.String(),
			Timestamp: entry.At,
			Actor:     string(entry.Actor),
			Note:      optionalString(entry.Note),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveDeliveries handles GET /api/v1/orders/active - retrieves orders on the road.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	deliveries, err := s.h.GetActiveDeliveries.Handle(ctx.Request().Context(), queries.NewGetActiveDeliveriesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.ActiveDelivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = servers.ActiveDelivery{
			Id:          d.ID.Bytes(),
			Number:      d.Number,
			Status:      d.Status.String(),
			AgentId:     d.AgentID.Bytes(),
			AgentName:   d.AgentName,
			Destination: toAPIPoint(d.Destination),
			LocatedAt:   d.LocatedAt,
		}
		if d.AgentLocation != nil {
			location := toAPIPoint(*d.AgentLocation)
			response[i].AgentLocation = &location
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.advance(ctx, orderId, order.Confirmed, order.ActorVendor, nil)
}

// StartPreparingOrder handles POST /api/v1/orders/{orderId}/start-preparing.
func (s *Server) StartPreparingOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.advance(ctx, orderId, order.Preparing, order.ActorVendor, nil)
}

// PickUpOrder handles POST /api/v1/orders/{orderId}/pick-up.
func (s *Server) PickUpOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.agentStep(ctx, orderId, order.PickedUp)
}

// StartOrderTransit handles POST /api/v1/orders/{orderId}/in-transit.
func (s *Server) StartOrderTransit(ctx echo.Context, orderId servers.OrderId) error {
	return s.agentStep(ctx, orderId, order.InTransit)
}

func (s *Server) agentStep(ctx echo.Context, orderId servers.OrderId, target order.Status) error {
	var body servers.AgentStep
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID, err := fromOptionalAPIUUID(body.AgentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.advance(ctx, orderId, target, order.ActorAgent, agentID)
}

func (s *Server) advance(
	ctx echo.Context,
	orderId servers.OrderId,
	target order.Status,
	actor order.Actor,
	agentID *kernel.UUID,
) error {
	if err := s.doAdvance(ctx, orderId, target, actor, "", agentID); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) doAdvance(
	ctx echo.Context,
	orderId servers.OrderId,
	target order.Status,
	actor order.Actor,
	note string,
	agentID *kernel.UUID,
) error {
	orderID, err := fromAPIUUID(orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target, actor, note, agentID)
	if err != nil {
		return err
	}
	return s.h.AdvanceOrder.Handle(ctx.Request().Context(), cmd)
}

// MarkOrderReady handles POST /api/v1/orders/{orderId}/ready. The order is
// dispatched right away; when no agent can take it yet it stays ready for the
// dispatch job and 202 is returned.
func (s *Server) MarkOrderReady(ctx echo.Context, orderId servers.OrderId) error {
	if err := s.doAdvance(ctx, orderId, order.Ready, order.ActorVendor, "", nil); err != nil {
		return s.fail(ctx, err)
	}

	agentID, err := s.dispatch(ctx, orderId, nil)
	if err != nil {
		s.logger.InfoContext(ctx.Request().Context(), "Ready order left waiting",
			"order_id", orderId.String(), "reason", err)
		return ctx.JSON(http.StatusAccepted, servers.DispatchResult{
			OrderId: orderId,
			Status:  servers.DispatchResultStatusWaiting,
		})
	}

	return ctx.JSON(http.StatusOK, servers.DispatchResult{
		OrderId: orderId,
		AgentId: toAPIUUID(&agentID),
		Status:  servers.DispatchResultStatusAssigned,
	})
}

// DispatchOrder handles POST /api/v1/orders/{orderId}/dispatch. With an
// agentId in the body the order is force assigned to that agent.
func (s *Server) DispatchOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.DispatchOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	forceAgentID, err := fromOptionalAPIUUID(body.AgentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	agentID, err := s.dispatch(ctx, orderId, forceAgentID)
	if errors.Is(err, services.ErrNoAgentAvailable) {
		return ctx.JSON(http.StatusAccepted, servers.DispatchResult{
			OrderId: orderId,
			Status:  servers.DispatchResultStatusWaiting,
		})
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.DispatchResult{
		OrderId: orderId,
		AgentId: toAPIUUID(&agentID),
		Status:  servers.DispatchResultStatusAssigned,
	})
}

func (s *Server) dispatch(ctx echo.Context, orderId servers.OrderId, forceAgentID *kernel.UUID) (kernel.UUID, error) {
	orderID, err := fromAPIUUID(orderId)
	if err != nil {
		return kernel.UUID{}, err
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID, forceAgentID)
	if err != nil {
		return kernel.UUID{}, err
	}
	return s.h.DispatchOrder.Handle(ctx.Request().Context(), cmd)
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.DeliverOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := fromAPIUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	agentID, err := fromOptionalAPIUUID(body.AgentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var proof string
	if body.Proof != nil {
		proof = *body.Proof
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, agentID, proof, order.ActorAgent)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. The actor
// defaults to the customer.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.CancelOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := fromAPIUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	actor := order.ActorCustomer
	if body.Actor != nil {
		actor = order.Actor(*body.Actor)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefundOrder handles POST /api/v1/orders/{orderId}/refund.
func (s *Server) RefundOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.RefundOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var note string
	if body.Note != nil {
		note = *body.Note
	}

	if err := s.doAdvance(ctx, orderId, order.Refunded, order.ActorAdmin, note, nil); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
