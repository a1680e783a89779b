package repository

import (
	"context"
	"fmt"

	"matchday/application"
	"matchday/database"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db             *database.DB
	tx             pgx.Tx
	ctx            context.Context
	publisher      interfaces.TransactionalEventPublisher
	userRepo       interfaces.UserRepository
	groupRepo      interfaces.GroupRepository
	matchRepo      interfaces.MatchRepository
	predictionRepo interfaces.PredictionRepository
}

type unitOfWorkFactory struct {
	db           *database.DB
	newPublisher func() interfaces.TransactionalEventPublisher
}

// NewUnitOfWorkFactory creates a UnitOfWork factory. newPublisher builds a
// fresh transactional publisher per unit of work; its buffered events are
// flushed only after a successful commit.
func NewUnitOfWorkFactory(db *database.DB, newPublisher func() interfaces.TransactionalEventPublisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:           db,
		newPublisher: newPublisher,
	}
}

// Create creates a new UnitOfWork
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:        f.db,
		publisher: f.newPublisher(),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepository(tx)
	u.groupRepo = newGroupRepository(tx)
	u.matchRepo = newMatchRepository(tx)
	u.predictionRepo = newPredictionRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events only after a successful commit
	u.publisher.Flush(u.ctx)

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

func (u *unitOfWork) Users() interfaces.UserRepository {
	return u.userRepo
}

func (u *unitOfWork) Groups() interfaces.GroupRepository {
	return u.groupRepo
}

func (u *unitOfWork) Matches() interfaces.MatchRepository {
	return u.matchRepo
}

func (u *unitOfWork) Predictions() interfaces.PredictionRepository {
	return u.predictionRepo
}

func (u *unitOfWork) Publisher() interfaces.EventPublisher {
	return u.publisher
}
