package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/domain"
)

// Publisher implements usecase.EventPublisher over AMQP. Messages are
// persistent JSON with ULID message ids, so broker logs sort by publish
// order.
type Publisher struct {
	channel      *amqp091.Channel
	exchangeName string
	routingKey   string
	logger       zerolog.Logger
}

// PublisherConfig holds dependencies for the Publisher.
type PublisherConfig struct {
	Channel      *amqp091.Channel
	ExchangeName string
	QueueName    string
	RoutingKey   string
	Logger       zerolog.Logger
}

// NewPublisher declares the exchange, queue and binding and returns a
// Publisher. Declaring on both ends keeps either service safe to start
// first.
func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if err := declareTopology(cfg.Channel, cfg.ExchangeName, cfg.QueueName, cfg.RoutingKey); err != nil {
		return nil, err
	}

	return &Publisher{
		channel:      cfg.Channel,
		exchangeName: cfg.ExchangeName,
		routingKey:   cfg.RoutingKey,
		logger:       cfg.Logger,
	}, nil
}

// PublishEntryCreated publishes an entry-created notification.
func (p *Publisher) PublishEntryCreated(ctx context.Context, event domain.EntryCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal entry created event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		p.exchangeName,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			MessageId:    ulid.Make().String(),
			Type:         domain.EventTypeEntryCreated,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish entry created event: %w", err)
	}

	p.logger.Debug().
		Str("entry_id", event.EntryID).
		Str("exchange", p.exchangeName).
		Msg("published entry created event")

	return nil
}
