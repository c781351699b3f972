package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

// RedisConfig describes the Redis connection used for pub/sub.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient connects to Redis and checks the connection with a PING.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisSinkOptions tunes the Redis sink. Zero values pick the defaults.
type RedisSinkOptions struct {
	// Prefix is prepended to every channel and key, e.g. "dispatch:".
	Prefix string
	// Buffer is the number of messages queued before new ones are dropped.
	Buffer int
	// Timeout bounds a single publish.
	Timeout time.Duration
	// LocationTTL is how long the latest delivery location stays readable.
	LocationTTL time.Duration
}

// RedisSink publishes notifications as JSON on one channel per order,
// "<prefix>orders:<orderId>", and keeps the latest delivery location under
// "<prefix>orders:<orderId>:location".
//
// Calls only enqueue; a single goroutine publishes in order. When the queue
// is full the message is dropped and logged.
type RedisSink struct {
	client *redis.Client
	logger *slog.Logger
	opts   RedisSinkOptions
	now    func() time.Time

	queue  chan Message
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

func NewRedisSink(client *redis.Client, logger *slog.Logger, opts RedisSinkOptions) *RedisSink {
	if opts.Buffer <= 0 {
		opts.Buffer = 1024
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.LocationTTL <= 0 {
		opts.LocationTTL = time.Hour
	}

	s := &RedisSink{
		client: client,
		logger: logger.With("component", "redis-notify"),
		opts:   opts,
		now:    time.Now,
		queue:  make(chan Message, opts.Buffer),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// OrderChannel is the pub/sub channel for notifications about orderID.
func (s *RedisSink) OrderChannel(orderID string) string {
	return s.opts.Prefix + "orders:" + orderID
}

// LocationKey is the key holding the latest delivery location of orderID.
func (s *RedisSink) LocationKey(orderID string) string {
	return s.OrderChannel(orderID) + ":location"
}

func (s *RedisSink) OrderStatusChanged(_ context.Context, event order.StatusChanged) {
	s.enqueue(statusMessage(event))
}

func (s *RedisSink) DeliveryLocationUpdate(_ context.Context, event agent.LocationReported) {
	s.enqueue(locationMessage(event))
}

func (s *RedisSink) AgentAssigned(_ context.Context, orderID kernel.UUID, summary ports.AgentSummary) {
	s.enqueue(assignedMessage(orderID.String(), summary, s.now().UTC()))
}

// Close stops accepting messages and waits until the queued ones are published.
func (s *RedisSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
}

func (s *RedisSink) enqueue(m Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.queue <- m:
	default:
		s.logger.Warn("notification dropped, queue is full",
			slog.String("type", m.Type),
			slog.String("order_id", m.OrderID),
		)
	}
}

func (s *RedisSink) run() {
	defer close(s.done)
	for m := range s.queue {
		s.publish(m)
	}
}

func (s *RedisSink) publish(m Message) {
	payload, err := json.Marshal(m)
	if err != nil {
		s.logger.Error("failed to encode notification", slog.String("type", m.Type), slog.Any("error", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()

	if err = s.client.Publish(ctx, s.OrderChannel(m.OrderID), payload).Err(); err != nil {
		s.logger.Error("failed to publish notification",
			slog.String("type", m.Type),
			slog.String("order_id", m.OrderID),
			slog.Any("error", err),
		)
	}

	if m.Type == TypeDeliveryLocation {
		if err = s.client.Set(ctx, s.LocationKey(m.OrderID), payload, s.opts.LocationTTL).Err(); err != nil {
			s.logger.Error("failed to store delivery location",
				slog.String("order_id", m.OrderID),
				slog.Any("error", err),
			)
		}
	}
}
