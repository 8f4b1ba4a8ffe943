// Package events defines the domain events the API emits and publishes them
// to RabbitMQ.
package events

import "time"

// QueueMessageReceived is the queue (and routing key) for inbox events.
const QueueMessageReceived = "inbox.message_received"

// MessageReceived is published after a visitor's contact message has been
// stored.  It carries enough for a notifier to alert the site owner without
// querying the database; the message body itself is left out.
type MessageReceived struct {
	MessageID  uint64    `json:"message_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Category   string    `json:"category"`
	ReceivedAt time.Time `json:"received_at"`
}
