package repository

import (
	"context"
	"fmt"
	"time"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type matchRepository struct {
	q Queryable
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *database.DB) interfaces.MatchRepository {
	return &matchRepository{q: db.Pool}
}

func newMatchRepository(tx Queryable) interfaces.MatchRepository {
	return &matchRepository{q: tx}
}

// GetByID retrieves a match by id
func (r *matchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	query := `
		SELECT id, sport, home_team, away_team, scheduled_at, status, home_score, away_score, created_at
		FROM matches
		WHERE id = $1`

	var match entities.Match
	err := r.q.QueryRow(ctx, query, id).Scan(
		&match.ID,
		&match.Sport,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.ScheduledAt,
		&match.Status,
		&match.HomeScore,
		&match.AwayScore,
		&match.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}

	return &match, nil
}

// Create persists a new match
func (r *matchRepository) Create(ctx context.Context, match *entities.Match) error {
	if match.Status == "" {
		match.Status = entities.MatchStatusScheduled
	}

	query := `
		INSERT INTO matches (sport, home_team, away_team, scheduled_at, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		match.Sport,
		match.HomeTeam,
		match.AwayTeam,
		match.ScheduledAt,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// SetResult records the final scores and marks the match finished
func (r *matchRepository) SetResult(ctx context.Context, id int64, homeScore, awayScore int) error {
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("result scores must be non-negative, got %d-%d", homeScore, awayScore)
	}

	query := `
		UPDATE matches
		SET home_score = $2, away_score = $3, status = 'finished'
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, homeScore, awayScore)
	if err != nil {
		return fmt.Errorf("failed to set result for match %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %d not found", id)
	}

	return nil
}

// Cancel marks the match cancelled
func (r *matchRepository) Cancel(ctx context.Context, id int64) error {
	query := `
		UPDATE matches
		SET status = 'cancelled'
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to cancel match %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %d not found", id)
	}

	return nil
}

// GetDeadlineOverride returns the group-specific prediction deadline for a
// match, or nil if none is configured
func (r *matchRepository) GetDeadlineOverride(ctx context.Context, matchID, groupID int64) (*time.Time, error) {
	query := `
		SELECT deadline
		FROM match_deadline_overrides
		WHERE match_id = $1 AND group_id = $2`

	var deadline time.Time
	err := r.q.QueryRow(ctx, query, matchID, groupID).Scan(&deadline)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deadline override for match %d in group %d: %w", matchID, groupID, err)
	}

	return &deadline, nil
}

// SetDeadlineOverride configures a group-specific prediction deadline
func (r *matchRepository) SetDeadlineOverride(ctx context.Context, matchID, groupID int64, deadline time.Time) error {
	query := `
		INSERT INTO match_deadline_overrides (match_id, group_id, deadline)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id, group_id) DO UPDATE SET deadline = EXCLUDED.deadline`

	_, err := r.q.Exec(ctx, query, matchID, groupID, deadline)
	if err != nil {
		return fmt.Errorf("failed to set deadline override for match %d in group %d: %w", matchID, groupID, err)
	}

	return nil
}
