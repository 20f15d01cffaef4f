package realtime

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Consumer bridges fulfillment-side order update events from the broker
// into the in-process feed. The storefront only ever consumes; status
// changes originate exclusively on the fulfillment side.
type Consumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	feed  *Feed
	log   *logrus.Logger
}

func NewConsumer(url, queue string, feed *Feed, log *logrus.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Consumer{conn: conn, ch: ch, queue: queue, feed: feed, log: log}, nil
}

// Start begins consuming order update events and publishing them to the
// feed. Malformed messages are rejected without requeue.
func (c *Consumer) Start() error {
	msgs, err := c.ch.Consume(
		c.queue,
		"storefront", // consumer tag
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			var u OrderUpdate
			if err := json.Unmarshal(msg.Body, &u); err != nil || u.OrderID == "" {
				c.log.Warnf("discarding malformed order event: %s", msg.Body)
				_ = msg.Nack(false, false)
				continue
			}
			c.feed.Publish(u)
			_ = msg.Ack(false)
		}
	}()
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
