package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisSinkIntegrationTestSuite publishes through a real Redis started in a container.
type RedisSinkIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
}

func TestRedisSinkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisSinkIntegrationTestSuite))
}

func (suite *RedisSinkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	suite.Require().NoError(err)

	client, err := notify.NewRedisClient(notify.RedisConfig{Host: host, Port: port.Int()})
	suite.Require().NoError(err)
	suite.client = client
}

func (suite *RedisSinkIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisSinkIntegrationTestSuite) TestPublishesOrderNotificationsInOrder() {
	ctx := context.Background()
	sink := notify.NewRedisSink(suite.client, slog.New(slog.NewTextHandler(io.Discard, nil)),
		notify.RedisSinkOptions{Prefix: "test:"})
	orderID, agentID := kernel.NewUUID(), kernel.NewUUID()

	sub := suite.client.Subscribe(ctx, sink.OrderChannel(orderID.String()))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	suite.Require().NoError(err)
	messages := sub.Channel()

	point, err := kernel.NewPoint(36.82, -1.29)
	suite.Require().NoError(err)

	sink.OrderStatusChanged(ctx, order.StatusChanged{
		OrderID: orderID, Status: order.Assigned, Actor: order.ActorSystem, At: time.Now().UTC(), AgentID: &agentID,
	})
	sink.AgentAssigned(ctx, orderID, ports.AgentSummary{
		ID: agentID, Name: "Otieno", Phone: "+254700000002", Vehicle: agent.VehicleMotorcycle,
	})
	sink.DeliveryLocationUpdate(ctx, agent.LocationReported{
		AgentID: agentID, OrderID: orderID, Point: point, At: time.Now().UTC(),
	})
	sink.Close()

	received := make([]notify.Message, 0, 3)
	for len(received) < 3 {
		select {
		case msg := <-messages:
			var m notify.Message
			suite.Require().NoError(json.Unmarshal([]byte(msg.Payload), &m))
			received = append(received, m)
		case <-time.After(5 * time.Second):
			suite.FailNow("timed out waiting for notifications", "got %d", len(received))
		}
	}

	suite.Equal(notify.TypeOrderStatusChanged, received[0].Type)
	suite.Equal("assigned", received[0].Status)
	suite.Equal(agentID.String(), received[0].AgentID)

	suite.Equal(notify.TypeAgentAssigned, received[1].Type)
	suite.Require().NotNil(received[1].Agent)
	suite.Equal("Otieno", received[1].Agent.Name)
	suite.Equal("motorcycle", received[1].Agent.Vehicle)

	suite.Equal(notify.TypeDeliveryLocation, received[2].Type)
	suite.Require().NotNil(received[2].Lng)
	suite.InDelta(36.82, *received[2].Lng, 1e-9)

	stored, err := suite.client.Get(ctx, sink.LocationKey(orderID.String())).Result()
	suite.Require().NoError(err)
	suite.Contains(stored, `"type":"delivery_location"`)
}

func (suite *RedisSinkIntegrationTestSuite) TestCloseIsIdempotentAndDropsLateMessages() {
	sink := notify.NewRedisSink(suite.client, slog.New(slog.NewTextHandler(io.Discard, nil)), notify.RedisSinkOptions{})

	sink.Close()
	sink.Close()

	suite.NotPanics(func() {
		sink.OrderStatusChanged(context.Background(), order.StatusChanged{OrderID: kernel.NewUUID(), Status: order.Ready})
	})
}
