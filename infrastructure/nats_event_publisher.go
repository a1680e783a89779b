package infrastructure

import (
	"encoding/json"
	"fmt"
	"time"

	"matchday/domain/events"
	"matchday/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// subjectPrefix namespaces all contest event subjects
const subjectPrefix = "matchday.events"

// eventEnvelope is the wire format for published domain events
type eventEnvelope struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NATSEventPublisher implements the EventPublisher interface using NATS
type NATSEventPublisher struct {
	client *NATSClient
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(client *NATSClient) interfaces.EventPublisher {
	return &NATSEventPublisher{client: client}
}

// SubjectForEvent maps an event type to its NATS subject
func SubjectForEvent(eventType events.EventType) string {
	return fmt.Sprintf("%s.%s", subjectPrefix, eventType)
}

// Publish publishes a domain event to NATS
func (p *NATSEventPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type(), err)
	}

	envelope := eventEnvelope{
		ID:        uuid.New().String(),
		Type:      string(event.Type()),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope for event %s: %w", event.Type(), err)
	}

	subject := SubjectForEvent(event.Type())
	if err := p.client.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type(), err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"subject":   subject,
		"messageID": envelope.ID,
	}).Debug("Published domain event")

	return nil
}
