package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/metrics"
)

// redeliverySchedule is the transport-level retry policy, applied after the
// engine's own conflict retries are exhausted. After the last redelivery the
// notification is dropped.
var redeliverySchedule = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	10 * time.Second,
}

// redeliveryCountHeader carries how many times this notification has been
// republished by us.
const redeliveryCountHeader = "x-redelivery-count"

// Consolidator applies one entry notification to the daily consolidation.
type Consolidator interface {
	ApplyEntry(ctx context.Context, date time.Time, kind domain.EntryKind, amount decimal.Decimal) (*domain.DailyConsolidation, error)
}

// Consumer bridges the message broker and the consolidation engine. It
// applies no deduplication: a notification redelivered after a successful
// application is applied again.
type Consumer struct {
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	routingKey   string
	workers      int
	engine       Consolidator
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// ConsumerConfig holds dependencies for the Consumer.
type ConsumerConfig struct {
	Channel      *amqp091.Channel
	ExchangeName string
	QueueName    string
	RoutingKey   string
	Workers      int
	Engine       Consolidator
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
}

// NewConsumer declares the exchange, queue and binding and returns a
// Consumer ready to start.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	if err := declareTopology(cfg.Channel, cfg.ExchangeName, cfg.QueueName, cfg.RoutingKey); err != nil {
		return nil, err
	}

	// Prefetch one message per worker; each delivery holds a read-modify-write
	// cycle against a single date row.
	if err := cfg.Channel.Qos(cfg.Workers, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	return &Consumer{
		channel:      cfg.Channel,
		exchangeName: cfg.ExchangeName,
		queueName:    cfg.QueueName,
		routingKey:   cfg.RoutingKey,
		workers:      cfg.Workers,
		engine:       cfg.Engine,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
	}, nil
}

// Start consumes entry-created notifications until ctx is cancelled.
// Deliveries are fanned out across the configured number of workers;
// notifications for the same or different dates may be processed
// concurrently.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		c.queueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.Info().
		Str("queue", c.queueName).
		Int("workers", c.workers).
		Msg("entry-created consumer started")

	errCh := make(chan error, c.workers)
	for i := 0; i < c.workers; i++ {
		go func() {
			errCh <- c.work(ctx, deliveries)
		}()
	}

	var firstErr error
	for i := 0; i < c.workers; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (c *Consumer) work(ctx context.Context, deliveries <-chan amqp091.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}

			c.handle(ctx, delivery)
		}
	}
}

// handle processes one notification. Success acks; any engine failure leaves
// the notification unacked and schedules a bounded transport redelivery.
func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	var event domain.EntryCreatedEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		c.logger.Error().Err(err).Msg("malformed entry-created notification, dropping")
		_ = delivery.Nack(false, false)
		return
	}

	c.logger.Info().
		Str("entry_id", event.EntryID).
		Str("date", event.Date.Format("2006-01-02")).
		Int("kind", event.Kind).
		Str("amount", event.Amount.String()).
		Msg("entry-created notification received")

	consolidation, err := c.engine.ApplyEntry(ctx, event.Date, domain.EntryKind(event.Kind), event.Amount)
	if err == nil {
		if c.metrics != nil {
			c.metrics.EventsConsumed.Inc()
		}

		c.logger.Info().
			Str("entry_id", event.EntryID).
			Str("balance", consolidation.Balance.String()).
			Msg("consolidation updated")

		_ = delivery.Ack(false)

		return
	}

	if ctx.Err() != nil {
		// Cancelled mid-processing: leave the notification unacked so the
		// broker redelivers it after the channel closes.
		return
	}

	if c.metrics != nil {
		if errors.Is(err, domain.ErrConflict) {
			c.metrics.ConflictsExhausted.Inc()
		}
		c.metrics.ConsumeFailures.Inc()
	}

	c.logger.Error().
		Err(err).
		Str("entry_id", event.EntryID).
		Msg("failed to apply entry-created notification")

	c.redeliver(ctx, delivery)
}

// redeliver republishes the notification after the scheduled delay, acking
// the original once the copy is in the broker. When the schedule is
// exhausted the notification is dropped.
func (c *Consumer) redeliver(ctx context.Context, delivery amqp091.Delivery) {
	count := redeliveryCount(delivery)
	if count >= len(redeliverySchedule) {
		c.logger.Error().
			Int("redeliveries", count).
			Msg("redelivery attempts exhausted, dropping notification")
		_ = delivery.Nack(false, false)
		return
	}

	timer := time.NewTimer(redeliverySchedule[count])
	defer timer.Stop()

	select {
	case <-ctx.Done():
		// Shutdown mid-wait: leave unacked for broker-side redelivery.
		return
	case <-timer.C:
	}

	headers := amqp091.Table{}
	for k, v := range delivery.Headers {
		headers[k] = v
	}
	headers[redeliveryCountHeader] = int32(count + 1)

	err := c.channel.PublishWithContext(ctx,
		c.exchangeName,
		c.routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  delivery.ContentType,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			MessageId:    delivery.MessageId,
			Headers:      headers,
			Body:         delivery.Body,
		},
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to republish notification, requeueing")
		_ = delivery.Nack(false, true)
		return
	}

	if c.metrics != nil {
		c.metrics.Redeliveries.Inc()
	}

	_ = delivery.Ack(false)
}

func redeliveryCount(delivery amqp091.Delivery) int {
	raw, ok := delivery.Headers[redeliveryCountHeader]
	if !ok {
		return 0
	}

	switch v := raw.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func declareTopology(channel *amqp091.Channel, exchangeName, queueName, routingKey string) error {
	err := channel.ExchangeDeclare(
		exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := channel.QueueBind(queueName, routingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}
