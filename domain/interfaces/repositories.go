package interfaces

import (
	"context"
	"time"

	"matchday/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// Create persists a new user, filling in id and registration time
	Create(ctx context.Context, user *entities.User) error
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	// GetByID retrieves a group by id
	GetByID(ctx context.Context, id int64) (*entities.Group, error)

	// Create persists a new group, filling in id and creation time
	Create(ctx context.Context, group *entities.Group) error

	// AddMember adds a user to a group
	AddMember(ctx context.Context, groupID, userID int64) error

	// IsMember reports whether the user belongs to the group
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// GetByID retrieves a match by id
	GetByID(ctx context.Context, id int64) (*entities.Match, error)

	// Create persists a new match, filling in id and creation time
	Create(ctx context.Context, match *entities.Match) error

	// SetResult records the final scores and marks the match finished
	SetResult(ctx context.Context, id int64, homeScore, awayScore int) error

	// Cancel marks the match cancelled
	Cancel(ctx context.Context, id int64) error

	// GetDeadlineOverride returns the group-specific prediction deadline
	// for a match, or nil if none is configured
	GetDeadlineOverride(ctx context.Context, matchID, groupID int64) (*time.Time, error)

	// SetDeadlineOverride configures a group-specific prediction deadline
	SetDeadlineOverride(ctx context.Context, matchID, groupID int64, deadline time.Time) error
}

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	// Upsert atomically creates or replaces the prediction for its
	// (user, match, group) key, filling in id and placed time. Replacing
	// resets points and only succeeds while the existing row is pending;
	// otherwise a domain.InvalidStateError is returned.
	Upsert(ctx context.Context, prediction *entities.Prediction) error

	// GetByKey retrieves the prediction for a (user, match, group) key
	GetByKey(ctx context.Context, userID, matchID, groupID int64) (*entities.Prediction, error)

	// ListPendingByMatch returns all pending predictions for a match
	ListPendingByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error)

	// MarkProcessed awards points to a single pending prediction and flips
	// it to processed. Returns false if the row was no longer pending.
	MarkProcessed(ctx context.Context, id int64, points int, processedAt time.Time) (bool, error)

	// VoidPendingByMatch voids every pending prediction for a match and
	// returns the number of rows voided
	VoidPendingByMatch(ctx context.Context, matchID int64) (int64, error)

	// ListByUser returns a user's predictions, most recent first
	ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.Prediction, error)

	// GetUserStats returns aggregate statistics over a user's processed predictions
	GetUserStats(ctx context.Context, userID int64) (*entities.PredictionStats, error)

	// GetGroupStandings returns per-user aggregates of processed predictions
	// in a group. Ordering and rank assignment are left to the caller.
	GetGroupStandings(ctx context.Context, groupID int64) ([]*entities.LeaderboardEntry, error)
}
