package infrastructure

import (
	"context"
	"sync"

	"matchday/domain/events"
	"matchday/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// TransactionalPublisher buffers domain events raised during a transaction
// and forwards them to the underlying publisher only when Flush is called
// after a successful commit. Events from rolled-back transactions are never
// published.
type TransactionalPublisher struct {
	inner   interfaces.EventPublisher
	mu      sync.Mutex
	pending []events.Event
}

// NewTransactionalPublisher creates a publisher that buffers until Flush
func NewTransactionalPublisher(inner interfaces.EventPublisher) interfaces.TransactionalEventPublisher {
	return &TransactionalPublisher{inner: inner}
}

// Publish buffers the event until the transaction commits
func (p *TransactionalPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, event)
	return nil
}

// Flush publishes all buffered events. Publish failures are logged, not
// returned: the transaction has already committed.
func (p *TransactionalPublisher) Flush(ctx context.Context) {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, event := range pending {
		if err := p.inner.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to publish buffered event")
		}
	}
}
