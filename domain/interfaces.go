package domain

import (
	"context"
)

// MessageSubscriber is an interface for subscribing to raw messages from the
// message bus. This allows the application layer to register handlers without
// depending on the infrastructure implementation.
type MessageSubscriber interface {
	Subscribe(subject string, handler func(ctx context.Context, data []byte) error) error
}
