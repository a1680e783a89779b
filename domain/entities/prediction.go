package entities

import (
	"errors"
	"fmt"
	"time"
)

// Winner represents a predicted or actual match outcome
type Winner string

const (
	WinnerHome Winner = "HOME"
	WinnerAway Winner = "AWAY"
	WinnerDraw Winner = "DRAW"
)

// IsValid checks if the winner value is one of the known outcomes
func (w Winner) IsValid() bool {
	switch w {
	case WinnerHome, WinnerAway, WinnerDraw:
		return true
	}
	return false
}

// ParseWinner converts a raw string into a Winner value
func ParseWinner(s string) (Winner, error) {
	w := Winner(s)
	if !w.IsValid() {
		return "", fmt.Errorf("unknown winner value: %q", s)
	}
	return w, nil
}

// PredictionStatus represents the processing state of a prediction
type PredictionStatus string

const (
	PredictionStatusPending   PredictionStatus = "pending"
	PredictionStatusProcessed PredictionStatus = "processed"
	PredictionStatusVoided    PredictionStatus = "voided"
)

// Point awards for a scored prediction
const (
	PointsExact  = 3
	PointsWinner = 1
	PointsNone   = 0
)

// Prediction represents a user's forecast for one match within one group.
// At most one prediction exists per (user, match, group).
type Prediction struct {
	ID                 int64            `db:"id"`
	UserID             int64            `db:"user_id"`
	MatchID            int64            `db:"match_id"`
	GroupID            int64            `db:"group_id"`
	PredictedWinner    Winner           `db:"predicted_winner"`
	PredictedHomeScore int              `db:"predicted_home_score"`
	PredictedAwayScore int              `db:"predicted_away_score"`
	PointsEarned       int              `db:"points_earned"`
	Status             PredictionStatus `db:"status"`
	PlacedAt           time.Time        `db:"placed_at"`
	ProcessedAt        *time.Time       `db:"processed_at"`
}

// IsPending checks if the prediction has not been scored yet
func (p *Prediction) IsPending() bool {
	return p.Status == PredictionStatusPending
}

// IsProcessed checks if the prediction has been scored
func (p *Prediction) IsProcessed() bool {
	return p.Status == PredictionStatusProcessed
}

// IsVoided checks if the prediction was voided by a match cancellation
func (p *Prediction) IsVoided() bool {
	return p.Status == PredictionStatusVoided
}

// IsExact checks if the prediction earned the exact-score award
func (p *Prediction) IsExact() bool {
	return p.IsProcessed() && p.PointsEarned == PointsExact
}

// IsWinnerOnly checks if the prediction earned the winner-only award
func (p *Prediction) IsWinnerOnly() bool {
	return p.IsProcessed() && p.PointsEarned == PointsWinner
}

// Validate performs basic validation on the prediction payload.
// A winner that contradicts the predicted scores is deliberately allowed;
// scoring applies the exact-score and winner rules independently.
func (p *Prediction) Validate() error {
	if !p.PredictedWinner.IsValid() {
		return fmt.Errorf("invalid predicted winner: %q", p.PredictedWinner)
	}

	if p.PredictedHomeScore < 0 || p.PredictedAwayScore < 0 {
		return errors.New("predicted scores must be non-negative")
	}

	return nil
}
