package dto

import "fmt"

// MatchResultFinalizedPayload is the message published upstream once a
// match's final result is confirmed
type MatchResultFinalizedPayload struct {
	MatchID   int64 `json:"match_id"`
	HomeScore int   `json:"home_score"`
	AwayScore int   `json:"away_score"`
}

// Validate checks the payload carries a usable result
func (p *MatchResultFinalizedPayload) Validate() error {
	if p.MatchID <= 0 {
		return fmt.Errorf("match_id must be positive, got %d", p.MatchID)
	}
	if p.HomeScore < 0 || p.AwayScore < 0 {
		return fmt.Errorf("scores must be non-negative, got %d-%d", p.HomeScore, p.AwayScore)
	}
	return nil
}

// MatchCancelledPayload is the message published upstream when a match is
// called off
type MatchCancelledPayload struct {
	MatchID int64  `json:"match_id"`
	Reason  string `json:"reason,omitempty"`
}

// Validate checks the payload references a match
func (p *MatchCancelledPayload) Validate() error {
	if p.MatchID <= 0 {
		return fmt.Errorf("match_id must be positive, got %d", p.MatchID)
	}
	return nil
}
