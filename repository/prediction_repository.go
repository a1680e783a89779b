package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchday/database"
	"matchday/domain"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

type predictionRepository struct {
	q Queryable
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *database.DB) interfaces.PredictionRepository {
	return &predictionRepository{q: db.Pool}
}

func newPredictionRepository(tx Queryable) interfaces.PredictionRepository {
	return &predictionRepository{q: tx}
}

const predictionColumns = `id, user_id, match_id, group_id, predicted_winner,
	predicted_home_score, predicted_away_score, points_earned, status, placed_at, processed_at`

func scanPrediction(row pgx.Row) (*entities.Prediction, error) {
	var p entities.Prediction
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.MatchID,
		&p.GroupID,
		&p.PredictedWinner,
		&p.PredictedHomeScore,
		&p.PredictedAwayScore,
		&p.PointsEarned,
		&p.Status,
		&p.PlacedAt,
		&p.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert atomically creates or replaces the prediction for its
// (user, match, group) key. The status guard on the conflict branch means a
// processed or voided row is never overwritten; that case surfaces as a
// domain.InvalidStateError.
func (r *predictionRepository) Upsert(ctx context.Context, prediction *entities.Prediction) error {
	query := `
		INSERT INTO predictions (user_id, match_id, group_id, predicted_winner, predicted_home_score, predicted_away_score, points_earned, status)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 'pending')
		ON CONFLICT (user_id, match_id, group_id) DO UPDATE
		SET predicted_winner = EXCLUDED.predicted_winner,
		    predicted_home_score = EXCLUDED.predicted_home_score,
		    predicted_away_score = EXCLUDED.predicted_away_score,
		    points_earned = 0,
		    placed_at = NOW()
		WHERE predictions.status = 'pending'
		RETURNING id, points_earned, status, placed_at`

	err := r.q.QueryRow(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.GroupID,
		prediction.PredictedWinner,
		prediction.PredictedHomeScore,
		prediction.PredictedAwayScore,
	).Scan(
		&prediction.ID,
		&prediction.PointsEarned,
		&prediction.Status,
		&prediction.PlacedAt,
	)

	if err == pgx.ErrNoRows {
		// The conflict row exists but is no longer pending.
		existing, lookupErr := r.GetByKey(ctx, prediction.UserID, prediction.MatchID, prediction.GroupID)
		if lookupErr == nil && existing != nil {
			return &domain.InvalidStateError{Entity: "prediction", ID: existing.ID, State: string(existing.Status)}
		}
		return &domain.InvalidStateError{Entity: "prediction", State: "not pending"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgUniqueViolation || pgErr.Code == pgSerializationFailure) {
		return &domain.ConflictError{
			Key: fmt.Sprintf("prediction (%d, %d, %d)", prediction.UserID, prediction.MatchID, prediction.GroupID),
		}
	}
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}

	return nil
}

// GetByKey retrieves the prediction for a (user, match, group) key
func (r *predictionRepository) GetByKey(ctx context.Context, userID, matchID, groupID int64) (*entities.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE user_id = $1 AND match_id = $2 AND group_id = $3`

	prediction, err := scanPrediction(r.q.QueryRow(ctx, query, userID, matchID, groupID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction for user %d, match %d, group %d: %w", userID, matchID, groupID, err)
	}

	return prediction, nil
}

// ListPendingByMatch returns all pending predictions for a match
func (r *predictionRepository) ListPendingByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE match_id = $1 AND status = 'pending'
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending predictions for match %d: %w", matchID, err)
	}
	defer rows.Close()

	var predictions []*entities.Prediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending predictions for match %d: %w", matchID, err)
	}

	return predictions, nil
}

// MarkProcessed awards points to a single pending prediction and flips it to
// processed. The status guard makes processing idempotent: a row already
// taken by another run reports false.
func (r *predictionRepository) MarkProcessed(ctx context.Context, id int64, points int, processedAt time.Time) (bool, error) {
	query := `
		UPDATE predictions
		SET points_earned = $2, status = 'processed', processed_at = $3
		WHERE id = $1 AND status = 'pending'`

	tag, err := r.q.Exec(ctx, query, id, points, processedAt)
	if err != nil {
		return false, fmt.Errorf("failed to mark prediction %d processed: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

// VoidPendingByMatch voids every pending prediction for a match
func (r *predictionRepository) VoidPendingByMatch(ctx context.Context, matchID int64) (int64, error) {
	query := `
		UPDATE predictions
		SET status = 'voided', points_earned = 0
		WHERE match_id = $1 AND status = 'pending'`

	tag, err := r.q.Exec(ctx, query, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to void predictions for match %d: %w", matchID, err)
	}

	return tag.RowsAffected(), nil
}

// ListByUser returns a user's predictions, most recent first
func (r *predictionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE user_id = $1
		ORDER BY placed_at DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var predictions []*entities.Prediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions for user %d: %w", userID, err)
	}

	return predictions, nil
}

// GetUserStats returns aggregate statistics over a user's processed predictions
func (r *predictionRepository) GetUserStats(ctx context.Context, userID int64) (*entities.PredictionStats, error) {
	query := `
		SELECT
			COUNT(*) as total_predictions,
			COALESCE(SUM(points_earned), 0) as total_points,
			COUNT(CASE WHEN points_earned = 3 THEN 1 END) as exact_count,
			COUNT(CASE WHEN points_earned = 1 THEN 1 END) as winner_count,
			COUNT(CASE WHEN points_earned = 0 THEN 1 END) as wrong_count
		FROM predictions
		WHERE user_id = $1 AND status = 'processed'`

	var stats entities.PredictionStats
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&stats.TotalPredictions,
		&stats.TotalPoints,
		&stats.ExactCount,
		&stats.WinnerCount,
		&stats.WrongCount,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get prediction stats for user %d: %w", userID, err)
	}

	return &stats, nil
}

// GetGroupStandings returns per-user aggregates of processed predictions in a
// group. Rows come back in the leaderboard sort order for determinism, but
// final ordering and rank assignment stay in the service layer.
func (r *predictionRepository) GetGroupStandings(ctx context.Context, groupID int64) ([]*entities.LeaderboardEntry, error) {
	query := `
		SELECT
			p.user_id,
			u.username,
			COALESCE(SUM(p.points_earned), 0) as total_points,
			COUNT(CASE WHEN p.points_earned = 3 THEN 1 END) as exact_count,
			COUNT(CASE WHEN p.points_earned = 1 THEN 1 END) as winner_count,
			u.registered_at
		FROM predictions p
		JOIN users u ON u.id = p.user_id
		WHERE p.group_id = $1 AND p.status = 'processed'
		GROUP BY p.user_id, u.username, u.registered_at
		ORDER BY total_points DESC, exact_count DESC, winner_count DESC, u.registered_at ASC, p.user_id ASC`

	rows, err := r.q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings for group %d: %w", groupID, err)
	}
	defer rows.Close()

	var entries []*entities.LeaderboardEntry
	for rows.Next() {
		var entry entities.LeaderboardEntry
		err := rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.TotalPoints,
			&entry.ExactCount,
			&entry.WinnerCount,
			&entry.RegisteredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate standings for group %d: %w", groupID, err)
	}

	return entries, nil
}
