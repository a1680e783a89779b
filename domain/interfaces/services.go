package interfaces

import (
	"context"

	"matchday/domain/entities"
	"matchday/domain/events"
)

// PredictionService handles prediction submissions
type PredictionService interface {
	// Submit creates or replaces the caller's prediction for a match within
	// a group. The deadline is re-evaluated on every call.
	Submit(ctx context.Context, userID, matchID, groupID int64, winner entities.Winner, homeScore, awayScore int) (*entities.Prediction, error)
}

// MatchProcessor scores predictions once a match result is known
type MatchProcessor interface {
	// Process scores every pending prediction for a finished match.
	// Safe to retry: already-processed predictions are never touched.
	Process(ctx context.Context, matchID int64) (*entities.ProcessingSummary, error)

	// Void voids every pending prediction for a cancelled match and
	// returns the number of predictions voided
	Void(ctx context.Context, matchID int64) (int, error)
}

// LeaderboardService builds ranked per-group standings
type LeaderboardService interface {
	// Leaderboard returns up to limit ranked entries for a group
	Leaderboard(ctx context.Context, groupID int64, limit int) ([]*entities.LeaderboardEntry, error)
}

// StatsService exposes a user's prediction history and summary statistics
type StatsService interface {
	// GetUserStats returns summary statistics over processed predictions
	GetUserStats(ctx context.Context, userID int64) (*entities.PredictionStats, error)

	// GetUserPredictions returns a user's predictions, most recent first
	GetUserPredictions(ctx context.Context, userID int64, limit int) ([]*entities.Prediction, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events until the surrounding
// transaction commits
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all buffered events. Called after a successful commit.
	Flush(ctx context.Context)
}
