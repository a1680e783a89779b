package entities

import (
	"time"
)

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// Match represents a fixture that can be predicted on
type Match struct {
	ID          int64       `db:"id"`
	Sport       string      `db:"sport"`
	HomeTeam    string      `db:"home_team"`
	AwayTeam    string      `db:"away_team"`
	ScheduledAt *time.Time  `db:"scheduled_at"`
	Status      MatchStatus `db:"status"`
	HomeScore   *int        `db:"home_score"`
	AwayScore   *int        `db:"away_score"`
	CreatedAt   time.Time   `db:"created_at"`
}

// Result represents the authoritative outcome of a finished match
type Result struct {
	HomeScore int
	AwayScore int
}

// Winner derives the actual winner from the final scores
func (r Result) Winner() Winner {
	switch {
	case r.HomeScore > r.AwayScore:
		return WinnerHome
	case r.AwayScore > r.HomeScore:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

// HasSchedule checks if the match has a scheduled start time.
// A match without one can never be predicted on.
func (m *Match) HasSchedule() bool {
	return m.ScheduledAt != nil
}

// HasResult checks if both final scores have been recorded
func (m *Match) HasResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Result returns the recorded outcome, if any
func (m *Match) Result() (Result, bool) {
	if !m.HasResult() {
		return Result{}, false
	}
	return Result{HomeScore: *m.HomeScore, AwayScore: *m.AwayScore}, true
}

// IsFinished checks if the match has completed
func (m *Match) IsFinished() bool {
	return m.Status == MatchStatusFinished
}

// IsCancelled checks if the match was called off
func (m *Match) IsCancelled() bool {
	return m.Status == MatchStatusCancelled
}
