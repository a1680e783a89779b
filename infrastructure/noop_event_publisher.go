package infrastructure

import (
	"context"

	"matchday/domain/events"
	"matchday/domain/interfaces"
)

// NoopEventPublisher discards all events. Used in tests and when running
// without a message bus.
type NoopEventPublisher struct{}

// NewNoopEventPublisher creates a new noop event publisher
func NewNoopEventPublisher() interfaces.EventPublisher {
	return &NoopEventPublisher{}
}

// Publish discards the event
func (p *NoopEventPublisher) Publish(event events.Event) error {
	return nil
}

// Flush does nothing
func (p *NoopEventPublisher) Flush(ctx context.Context) {}
