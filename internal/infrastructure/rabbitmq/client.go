package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Client holds an AMQP connection and a channel on it.
type Client struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// Connect dials the broker with exponential backoff and opens a channel.
// Brokers routinely come up after the services that depend on them, so the
// dial is retried for up to a minute before giving up.
func Connect(ctx context.Context, url string, logger zerolog.Logger) (*Client, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 1 * time.Minute

	var conn *amqp091.Connection

	operation := func() error {
		var err error
		conn, err = amqp091.Dial(url)
		if err != nil {
			logger.Warn().Err(err).Msg("amqp dial failed, retrying")
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Client{conn: conn, channel: channel}, nil
}

// Channel returns the open channel.
func (c *Client) Channel() *amqp091.Channel {
	return c.channel
}

// NotifyClose registers a listener for connection-level failures.
func (c *Client) NotifyClose() <-chan *amqp091.Error {
	return c.conn.NotifyClose(make(chan *amqp091.Error, 1))
}

// Close closes the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
