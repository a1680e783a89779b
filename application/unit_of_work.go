package application

import (
	"context"

	"matchday/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations.
// All repositories returned by a UnitOfWork share one transaction, so a
// processing run either commits in full or not at all.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback rolls back the transaction. Safe to defer after Begin.
	Rollback() error

	// Users returns the transaction-scoped user repository
	Users() interfaces.UserRepository

	// Groups returns the transaction-scoped group repository
	Groups() interfaces.GroupRepository

	// Matches returns the transaction-scoped match repository
	Matches() interfaces.MatchRepository

	// Predictions returns the transaction-scoped prediction repository
	Predictions() interfaces.PredictionRepository

	// Publisher returns the event publisher whose events are held until commit
	Publisher() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
