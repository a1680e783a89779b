package cmd

import (
	"context"
	"fmt"
	"log"

	"matchday/application"
	"matchday/config"
	"matchday/database"
	"matchday/domain/interfaces"
	"matchday/domain/services"
	"matchday/infrastructure"
	"matchday/repository"
)

// Run initializes and starts the service
func Run(ctx context.Context) error {
	log.Println("Starting matchday service...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	// Initialize message bus
	log.Printf("Connecting to NATS at %s...", cfg.NATSServers)
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer natsClient.Close()

	// Durable streams for the inbound feeds and the outbound contest events
	if err := natsClient.EnsureStream("matchday_results", []string{"matchday.results.*"}); err != nil {
		return fmt.Errorf("failed to ensure results stream: %w", err)
	}
	if err := natsClient.EnsureStream("matchday_predictions", []string{"matchday.predictions.*"}); err != nil {
		return fmt.Errorf("failed to ensure predictions stream: %w", err)
	}
	if err := natsClient.EnsureStream("matchday_events", []string{"matchday.events.*"}); err != nil {
		return fmt.Errorf("failed to ensure events stream: %w", err)
	}

	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient)

	// Initialize unit of work factory; each transaction gets a publisher
	// whose events are flushed only after commit
	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(eventPublisher)
	})

	// Wire the inbound feeds: submissions gated by the configured cutoff,
	// finalized results routed to the match processor
	policy := services.NewDeadlinePolicy(cfg.PredictionCutoff())
	if err := application.RegisterApplicationSubscriptions(natsClient, uowFactory, policy); err != nil {
		return fmt.Errorf("failed to register subscriptions: %w", err)
	}
	log.Println("Bus subscriptions registered")

	log.Println("Service started, waiting for messages...")
	<-ctx.Done()

	log.Println("Shutting down...")
	return nil
}
