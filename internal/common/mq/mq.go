package mq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventsExchange carries order events: one message per order creation or
// status change. It is a fanout so every board instance sees every event.
const EventsExchange = "order_events"

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(host string, port int, user, pass string) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, pass, host, port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// DeclareEvents declares the fanout exchange. Idempotent.
func (c *Client) DeclareEvents() error {
	if c == nil || c.ch == nil {
		return fmt.Errorf("nil channel")
	}
	return c.ch.ExchangeDeclare(EventsExchange, "fanout", true, false, false, false, nil)
}

// PublishEvent fans an order event out to all subscribed boards. Events are
// refresh hints, not state, so they are published transient.
func (c *Client) PublishEvent(ctx context.Context, body []byte) error {
	return c.ch.PublishWithContext(ctx, EventsExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
}

// SubscribeEvents binds a fresh exclusive queue to the events exchange and
// returns its delivery channel. The queue disappears with the connection,
// which is exactly the lifetime a board subscription needs.
func (c *Client) SubscribeEvents(consumer string) (<-chan amqp.Delivery, error) {
	q, err := c.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, err
	}
	if err := c.ch.QueueBind(q.Name, "", EventsExchange, false, nil); err != nil {
		return nil, err
	}
	return c.ch.Consume(q.Name, consumer, true, true, false, false, nil)
}
