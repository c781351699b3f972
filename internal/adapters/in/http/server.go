// Package http is the inbound REST adapter. It implements the generated
// servers.ServerInterface on top of the command and query handlers.
package http

import (
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	// Agent commands
	RegisterAgent    commands.RegisterAgentCommandHandler
	SetAccountStatus commands.SetAgentAccountStatusCommandHandler
	AddAgentZone     commands.AddAgentZoneCommandHandler
	SetAvailability  commands.SetAvailabilityCommandHandler
	UpdateLocation   commands.UpdateLocationCommandHandler

	// Order commands
	CreateOrder   commands.CreateOrderCommandHandler
	AdvanceOrder  commands.AdvanceOrderCommandHandler
	DeliverOrder  commands.DeliverOrderCommandHandler
	CancelOrder   commands.CancelOrderCommandHandler
	DispatchOrder commands.DispatchOrderCommandHandler
	AcceptOrder   commands.AcceptOrderCommandHandler

	// Query handlers
	ListAgents          queries.ListAgentsQueryHandler
	GetOrder            queries.GetOrderQueryHandler
	GetActiveDeliveries queries.GetActiveDeliveriesQueryHandler
	GetAvailableOrders  queries.GetAvailableOrdersQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http")}
}

// Register mounts the API routes, the health probe and the Swagger UI on e.
func (s *Server) Register(e *echo.Echo) error {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	servers.RegisterHandlers(e, s)
	return registerSwagger(e)
}
