package entities

import "time"

// ProcessingSummary reports the outcome of scoring a match's predictions
type ProcessingSummary struct {
	MatchID     int64
	Total       int
	ExactCount  int
	WinnerCount int
	WrongCount  int
	TotalPoints int
}

// Record tallies a single scored prediction into the summary
func (s *ProcessingSummary) Record(points int) {
	s.Total++
	s.TotalPoints += points

	switch points {
	case PointsExact:
		s.ExactCount++
	case PointsWinner:
		s.WinnerCount++
	default:
		s.WrongCount++
	}
}

// LeaderboardEntry represents a user's position in a group leaderboard
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	TotalPoints  int       `json:"total_points"`
	ExactCount   int       `json:"exact_count"`
	WinnerCount  int       `json:"winner_count"`
	RegisteredAt time.Time `json:"registered_at"`
}

// PredictionStats represents aggregated prediction statistics for a user,
// computed over processed predictions only.
type PredictionStats struct {
	TotalPredictions int     `json:"total_predictions"`
	TotalPoints      int     `json:"total_points"`
	ExactCount       int     `json:"exact_count"`
	WinnerCount      int     `json:"winner_count"`
	WrongCount       int     `json:"wrong_count"`
	WinRate          float64 `json:"win_rate"`
	AveragePoints    float64 `json:"average_points"`
}

// CalculateRates computes the derived win rate and average points.
// A prediction counts as a win if it earned any points.
func (s *PredictionStats) CalculateRates() {
	if s.TotalPredictions == 0 {
		s.WinRate = 0
		s.AveragePoints = 0
		return
	}

	wins := s.ExactCount + s.WinnerCount
	s.WinRate = float64(wins) / float64(s.TotalPredictions) * 100
	s.AveragePoints = float64(s.TotalPoints) / float64(s.TotalPredictions)
}

// HasData checks if the stats contain any processed predictions
func (s *PredictionStats) HasData() bool {
	return s.TotalPredictions > 0
}
