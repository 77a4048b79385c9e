package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	amqp "github.com/streadway/amqp"
)

// OrderPlacedQueue is the durable queue order.placed events are routed to.
const OrderPlacedQueue = "order.placed"

// OrderPlacedItem is one line of a placed order.
type OrderPlacedItem struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderPlacedEvent is published once an order has been committed.
type OrderPlacedEvent struct {
	OrderID     uint              `json:"order_id"`
	Email       string            `json:"email"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []OrderPlacedItem `json:"items"`
	PlacedAt    time.Time         `json:"placed_at"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// mu serializes publishes on the shared channel.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the order queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("queue", OrderPlacedQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		OrderPlacedQueue, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", OrderPlacedQueue, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishOrderPlaced publishes event as a persistent JSON message.
func (c *Client) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",               // exchange: default exchange
		OrderPlacedQueue, // routing key: the queue name
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Debug().Uint("order_id", event.OrderID).Msg("published order event")
	return nil
}

// OrderPlacedHandler processes one decoded order.placed event.
type OrderPlacedHandler func(ctx context.Context, event OrderPlacedEvent) error

// ConsumeOrderEvents delivers order.placed events to handler until ctx is
// cancelled or the channel closes. A message is acked when handler returns
// nil and requeued otherwise; messages that cannot be decoded are dropped.
func (c *Client) ConsumeOrderEvents(ctx context.Context, handler OrderPlacedHandler) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		OrderPlacedQueue, // queue
		"",               // consumer tag
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Info().Str("queue", OrderPlacedQueue).Msg("waiting for order events")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("order event delivery channel closed")
			}
			handleDelivery(ctx, msg, handler)
		}
	}
}

// acknowledger is the part of amqp.Delivery handleDelivery needs.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type delivery struct {
	acknowledger
	tag  uint64
	body []byte
}

func handleDelivery(ctx context.Context, msg amqp.Delivery, handler OrderPlacedHandler) {
	process(ctx, delivery{acknowledger: msg, tag: msg.DeliveryTag, body: msg.Body}, handler)
}

func process(ctx context.Context, d delivery, handler OrderPlacedHandler) {
	event, err := DecodeOrderPlaced(d.body)
	if err != nil {
		log.Error().Err(err).Uint64("tag", d.tag).Msg("dropping undecodable order event")
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error().Err(nackErr).Uint64("tag", d.tag).Msg("failed to nack message")
		}
		return
	}

	if err := handler(ctx, event); err != nil {
		log.Warn().Err(err).Uint64("tag", d.tag).Msg("order event handler failed, requeueing")
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error().Err(nackErr).Uint64("tag", d.tag).Msg("failed to nack message")
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error().Err(ackErr).Uint64("tag", d.tag).Msg("failed to ack message")
	}
}

// DecodeOrderPlaced parses an order.placed message body.
func DecodeOrderPlaced(body []byte) (OrderPlacedEvent, error) {
	var event OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return OrderPlacedEvent{}, fmt.Errorf("invalid order event: %w", err)
	}
	if event.OrderID == 0 {
		return OrderPlacedEvent{}, fmt.Errorf("invalid order event: missing order_id")
	}
	return event, nil
}

// LogOrderPlaced is the default consumer handler; it records the event.
func LogOrderPlaced(_ context.Context, event OrderPlacedEvent) error {
	log.Info().
		Uint("order_id", event.OrderID).
		Str("email", event.Email).
		Str("total", event.TotalAmount.StringFixed(2)).
		Int("items", len(event.Items)).
		Msg("order placed")
	return nil
}
