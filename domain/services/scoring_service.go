package services

import (
	"matchday/domain/entities"
)

// ScoringService contains the pure scoring rules for predictions.
// It performs no I/O and is deterministic over valid inputs.
type ScoringService struct{}

// NewScoringService creates a new ScoringService
func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Score computes the points a prediction earns against a result.
// Rules, first match wins:
//  1. both predicted scores equal the actual scores -> 3 points
//  2. predicted winner equals the winner derived from the result -> 1 point
//  3. otherwise -> 0 points
//
// Draws are scored by the same three-way comparison as any other outcome.
func (s *ScoringService) Score(prediction *entities.Prediction, result entities.Result) int {
	if prediction.PredictedHomeScore == result.HomeScore &&
		prediction.PredictedAwayScore == result.AwayScore {
		return entities.PointsExact
	}

	if prediction.PredictedWinner == result.Winner() {
		return entities.PointsWinner
	}

	return entities.PointsNone
}
