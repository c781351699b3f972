package queries_test

import (
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var now = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

var (
	cbdPairs     = [][]float64{{36.70, -1.40}, {36.90, -1.40}, {36.90, -1.20}, {36.70, -1.20}}
	mombasaPairs = [][]float64{{39.60, -4.10}, {39.70, -4.10}, {39.70, -4.00}, {39.60, -4.00}}
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres_adapter.Migrate(db))
	return db
}

func point(t *testing.T, lng, lat float64) kernel.Point {
	t.Helper()
	p, err := kernel.NewPoint(lng, lat)
	require.NoError(t, err)
	return p
}

func newAgent(t *testing.T, name string, registered time.Time, zonePairs [][]float64) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), name, "+254722000000", agent.VehicleBicycle, registered)
	require.NoError(t, err)
	require.NoError(t, a.Activate())
	if zonePairs != nil {
		ring, ringErr := kernel.RingFromPairs(zonePairs)
		require.NoError(t, ringErr)
		_, err = a.AddWorkingZone(name+" zone", ring)
		require.NoError(t, err)
	}
	online := true
	require.NoError(t, a.SetAvailability(&online, nil, registered))
	return a
}

func newOrder(t *testing.T, destination kernel.Point, pickup *kernel.Point) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Sukuma wiki", 3, 5000)
	require.NoError(t, err)
	address, err := order.NewAddress(destination, "Kenyatta Avenue 1")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, address, pickup,
		order.Charges{DeliveryFee: 12000, Tax: 600}, order.ActorCustomer, now)
	require.NoError(t, err)
	return o
}

func readyAt(t *testing.T, o *order.Order, at time.Time) *order.Order {
	t.Helper()
	require.NoError(t, o.Confirm(order.ActorVendor, at))
	require.NoError(t, o.MarkReady(order.ActorVendor, at))
	return o
}
