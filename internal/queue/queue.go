package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/radheshyam-patil/devops-lab/internal/model"
	"github.com/radheshyam-patil/devops-lab/internal/repository"
)

// CustomerEventsTopic carries customer lifecycle events.
const CustomerEventsTopic = "customer_events"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers events to in-process subscribers with a
// bounded retry. Used when no broker is configured.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// jobPayload wraps a message payload with retry info
type jobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := jobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job jobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("⚠️ job failed (attempt %d/%d): %+v, error: %v", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("job permanently failed after %d attempts: %+v", job.MaxRetries, job.Payload)
			return // no requeue
		}

		// Backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartAuditSubscriber wires the customer-events topic to the audit
// trail. Failed inserts are retried by the queue.
func StartAuditSubscriber(q Queue, events repository.AuditEventRepositoryInterface) error {
	return q.Subscribe(CustomerEventsTopic, func(payload any) error {
		ev, ok := payload.(model.AuditEvent)
		if !ok {
			log.Printf("⚠️ unexpected payload type %T on %s, dropping", payload, CustomerEventsTopic)
			return nil // no retry
		}

		if err := events.Insert(&ev); err != nil {
			log.Println("⚠️ failed to record audit event:", err)
			return err // triggers retry in queue
		}
		return nil
	})
}
