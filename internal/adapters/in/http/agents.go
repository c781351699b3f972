package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListAgents handles GET /api/v1/agents.
func (s *Server) ListAgents(ctx echo.Context, params servers.ListAgentsParams) error {
	onlineOnly := params.Online != nil && *params.Online

	agents, err := s.h.ListAgents.Handle(ctx.Request().Context(), queries.NewListAgentsQuery(onlineOnly))
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Agent, len(agents))
	for i, a := range agents {
		response[i] = servers.Agent{
			Id:                  a.ID.Bytes(),
			Name:                a.Name,
			Phone:               a.Phone,
			Vehicle:             string(a.Vehicle),
			AccountStatus:       string(a.AccountStatus),
			IsOnline:            a.IsOnline,
			IsAvailable:         a.IsAvailable,
			CurrentOrderId:      toAPIUUID(a.CurrentOrderID),
			LastSeen:            a.LastSeen,
			CompletedDeliveries: a.CompletedDeliveries,
			Earnings:            int64(a.Earnings),
			RegisteredAt:        a.RegisteredAt,
		}
		if a.Location != nil {
			response[i].Location = &servers.AgentLocation{
				Lng:       a.Location.Point.Lng(),
				Lat:       a.Location.Point.Lat(),
				Accuracy:  a.Location.AccuracyM,
				Timestamp: a.Location.At,
			}
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterAgent handles POST /api/v1/agents.
func (s *Server) RegisterAgent(ctx echo.Context) error {
	var body servers.RegisterAgentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID := kernel.NewUUID()
	cmd, err := commands.NewRegisterAgentCommand(agentID, body.Name, body.Phone, agent.Vehicle(body.Vehicle))
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.RegisterAgent.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedAgent{Id: agentID.Bytes()})
}

// ActivateAgent handles POST /api/v1/agents/{agentId}/activate.
func (s *Server) ActivateAgent(ctx echo.Context, agentId servers.AgentId) error {
	return s.setAccountStatus(ctx, agentId, agent.AccountActive)
}

// DeactivateAgent handles POST /api/v1/agents/{agentId}/deactivate.
func (s *Server) DeactivateAgent(ctx echo.Context, agentId servers.AgentId) error {
	return s.setAccountStatus(ctx, agentId, agent.AccountDeactivated)
}

func (s *Server) setAccountStatus(ctx echo.Context, agentId servers.AgentId, status agent.AccountStatus) error {
	agentID, err := fromAPIUUID(agentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSetAgentAccountStatusCommand(agentID, status)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.SetAccountStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddAgentZone handles POST /api/v1/agents/{agentId}/zones.
func (s *Server) AddAgentZone(ctx echo.Context, agentId servers.AgentId) error {
	var body servers.AddAgentZoneJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID, err := fromAPIUUID(agentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAddAgentZoneCommand(agentID, body.Name, body.Coordinates)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AddAgentZone.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetAgentAvailability handles PUT /api/v1/agents/{agentId}/availability.
func (s *Server) SetAgentAvailability(ctx echo.Context, agentId servers.AgentId) error {
	var body servers.SetAgentAvailabilityJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID, err := fromAPIUUID(agentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSetAvailabilityCommand(agentID, body.IsOnline, body.IsAvailable)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.SetAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportAgentLocation handles POST /api/v1/agents/{agentId}/location.
// Reports older than the stored one are accepted and ignored.
func (s *Server) ReportAgentLocation(ctx echo.Context, agentId servers.AgentId) error {
	var body servers.ReportAgentLocationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID, err := fromAPIUUID(agentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var accuracy float64
	if body.Accuracy != nil {
		accuracy = *body.Accuracy
	}

	cmd, err := commands.NewUpdateLocationCommand(agentID, body.Lng, body.Lat, accuracy, body.Timestamp)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.UpdateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableOrders handles GET /api/v1/agents/{agentId}/available-orders.
func (s *Server) GetAvailableOrders(
	ctx echo.Context,
	agentId servers.AgentId,
	params servers.GetAvailableOrdersParams,
) error {
	agentID, err := fromAPIUUID(agentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetAvailableOrdersQuery(agentID, params.RadiusKm)
	if err != nil {
		return s.fail(ctx, err)
	}

	available, err := s.h.GetAvailableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.AvailableOrder, len(available))
	for i, o := range available {
		response[i] = servers.AvailableOrder{
			Id:          o.ID.Bytes(),
			Number:      o.Number,
			Destination: toAPIPoint(o.Destination),
			Address:     o.AddressText,
			Pickup:      toAPIPoint(o.Pickup),
			DeliveryFee: int64(o.DeliveryFee),
			Total:       int64(o.Total),
			ReadyAt:     o.ReadyAt,
			DistanceKm:  o.DistanceKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/agents/{agentId}/orders/{orderId}/accept.
func (s *Server) AcceptOrder(ctx echo.Context, agentId servers.AgentId, orderId servers.OrderId) error {
	agentID, err := fromAPIUUID(agentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := fromAPIUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(agentID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AcceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	assignee := openapi_types.UUID(agentID.Bytes())
	return ctx.JSON(http.StatusOK, servers.DispatchResult{
		OrderId: orderID.Bytes(),
		AgentId: &assignee,
		Status:  servers.DispatchResultStatusAssigned,
	})
}
