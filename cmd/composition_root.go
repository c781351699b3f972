package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/seed"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	lifecycle  services.DeliveryLifecycle
	logger     *slog.Logger
}

// NewCompositionRoot wires the use cases on top of gormDB. Committed domain
// events go to sink.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, sink ports.NotificationSink, logger *slog.Logger) (CompositionRoot, error) {
	lifecycle, err := services.NewDeliveryLifecycle(configs.Payout())
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, sink),
		lifecycle:  lifecycle,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) agentUoWFactory() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterAgentCommandHandler() commands.RegisterAgentCommandHandler {
	return commands.NewRegisterAgentCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateSetAgentAccountStatusCommandHandler() commands.SetAgentAccountStatusCommandHandler {
	return commands.NewSetAgentAccountStatusCommandHandler(c.agentUoWFactory(), c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateAddAgentZoneCommandHandler() commands.AddAgentZoneCommandHandler {
	return commands.NewAddAgentZoneCommandHandler(c.agentUoWFactory(), c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	return commands.NewSetAvailabilityCommandHandler(c.agentUoWFactory(), c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.agentUoWFactory(), c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateSweepStaleAgentsCommandHandler() commands.SweepStaleAgentsCommandHandler {
	return commands.NewSweepStaleAgentsCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory(), c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.fullUoWFactory(), c.lifecycle, c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fullUoWFactory(), c.lifecycle, c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.fullUoWFactory(), c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateDispatchReadyOrdersCommandHandler() commands.DispatchReadyOrdersCommandHandler {
	return commands.NewDispatchReadyOrdersCommandHandler(c.fullUoWFactory(), c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.fullUoWFactory(), c.configs.ClaimAttempts)
}

func (c *CompositionRoot) CreateListAgentsQueryHandler() queries.ListAgentsQueryHandler {
	return queries.NewListAgentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.uowFactory, c.configs.AvailableLimit)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterAgent:       c.CreateRegisterAgentCommandHandler(),
		SetAccountStatus:    c.CreateSetAgentAccountStatusCommandHandler(),
		AddAgentZone:        c.CreateAddAgentZoneCommandHandler(),
		SetAvailability:     c.CreateSetAvailabilityCommandHandler(),
		UpdateLocation:      c.CreateUpdateLocationCommandHandler(),
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		AdvanceOrder:        c.CreateAdvanceOrderCommandHandler(),
		DeliverOrder:        c.CreateDeliverOrderCommandHandler(),
		CancelOrder:         c.CreateCancelOrderCommandHandler(),
		DispatchOrder:       c.CreateDispatchOrderCommandHandler(),
		AcceptOrder:         c.CreateAcceptOrderCommandHandler(),
		ListAgents:          c.CreateListAgentsQueryHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetActiveDeliveries: c.CreateGetActiveDeliveriesQueryHandler(),
		GetAvailableOrders:  c.CreateGetAvailableOrdersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchReadyOrdersCommandHandler(),
		c.CreateSweepStaleAgentsCommandHandler(),
		jobs.Schedule{
			DispatchCron:  c.configs.DispatchCron,
			DispatchBatch: c.configs.DispatchBatch,
			SweepCron:     c.configs.SweepCron,
			SweepTimeout:  c.configs.PresenceTimeout,
			SweepLimit:    c.configs.SweepLimit,
		},
		c.logger,
	)
}

func (c *CompositionRoot) CreateSeedLoader() *seed.Loader {
	return seed.NewLoader(c.uowFactory, seed.Handlers{
		Register:        c.CreateRegisterAgentCommandHandler(),
		SetStatus:       c.CreateSetAgentAccountStatusCommandHandler(),
		AddZone:         c.CreateAddAgentZoneCommandHandler(),
		SetAvailability: c.CreateSetAvailabilityCommandHandler(),
	}, c.logger)
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
