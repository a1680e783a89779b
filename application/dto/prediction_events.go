package dto

import "fmt"

// PredictionSubmissionPayload is the message published when a user submits
// or changes a prediction
type PredictionSubmissionPayload struct {
	UserID             int64  `json:"user_id"`
	MatchID            int64  `json:"match_id"`
	GroupID            int64  `json:"group_id"`
	PredictedWinner    string `json:"predicted_winner"`
	PredictedHomeScore int    `json:"predicted_home_score"`
	PredictedAwayScore int    `json:"predicted_away_score"`
}

// Validate checks the payload references a full (user, match, group) key.
// Winner and score values are validated by the domain layer.
func (p *PredictionSubmissionPayload) Validate() error {
	if p.UserID <= 0 {
		return fmt.Errorf("user_id must be positive, got %d", p.UserID)
	}
	if p.MatchID <= 0 {
		return fmt.Errorf("match_id must be positive, got %d", p.MatchID)
	}
	if p.GroupID <= 0 {
		return fmt.Errorf("group_id must be positive, got %d", p.GroupID)
	}
	return nil
}
