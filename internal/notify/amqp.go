package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "email_notify_exchange"
	routingKey   = "email_routing_key"

	// Email messages that sit unconsumed longer than this are dropped by
	// the broker; a stale confirmation code is useless anyway.
	messageExpirationMs = "300000"
)

// wireMessage is the JSON body published to the email exchange.
type wireMessage struct {
	To      string  `json:"to"`
	Subject Subject `json:"subject"`
	Context Context `json:"context"`
}

// AMQPDispatcher publishes notification messages to the RabbitMQ exchange
// consumed by the email delivery service.
type AMQPDispatcher struct {
	conn *amqp.Connection
}

// NewAMQPDispatcher connects to the broker and declares the email exchange.
func NewAMQPDispatcher(url string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial error: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel error: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchangeName, "direct", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp exchange declare error: %w", err)
	}

	return &AMQPDispatcher{conn: conn}, nil
}

// Send publishes msg as a persistent JSON message. A fresh channel is opened
// per call; amqp channels are not safe for concurrent use.
func (d *AMQPDispatcher) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(wireMessage{
		To:      msg.To,
		Subject: msg.Context.Subject(),
		Context: msg.Context,
	})
	if err != nil {
		return fmt.Errorf("error encoding notification: %w", err)
	}

	ch, err := d.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel error: %w", err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		MessageId:    uuid.NewString(),
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Expiration:   messageExpirationMs,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp publish error: %w", err)
	}

	return nil
}

// Close tears down the broker connection.
func (d *AMQPDispatcher) Close() error {
	return d.conn.Close()
}
