package queue

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"

	"github.com/radheshyam-patil/devops-lab/internal/model"
)

// AMQPQueue is a RabbitMQ-backed Queue. Topics map to durable queues
// on the default exchange.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPQueue dials the broker and declares the customer-events
// queue.
func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		CustomerEventsTopic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch}, nil
}

// Publish marshals the payload as JSON and sends it to the topic's
// queue.
func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return q.ch.Publish(
		"",    // exchange
		topic, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Subscribe consumes the topic's queue and feeds decoded audit events
// to the handler. Handler errors requeue the delivery.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // autoAck off for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("amqp consume: %w", err)
	}

	go func() {
		for d := range msgs {
			var ev model.AuditEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				log.Println("⚠️ malformed event payload, dropping:", err)
				d.Nack(false, false)
				continue
			}
			if err := handler(ev); err != nil {
				d.Nack(false, true)
				continue
			}
			d.Ack(false)
		}
	}()

	return nil
}

// Close releases the channel and connection.
func (q *AMQPQueue) Close() {
	if q.ch != nil {
		q.ch.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
}

var _ Queue = (*AMQPQueue)(nil)
var _ Queue = (*InMemoryQueue)(nil)
