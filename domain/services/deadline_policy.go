package services

import (
	"time"

	"matchday/domain/entities"
)

// DefaultPredictionCutoff is how long before the scheduled start the
// prediction window closes when no group override is configured.
const DefaultPredictionCutoff = time.Hour

// DeadlinePolicy decides whether a match is still open for predictions.
// Pure: callers pass the current time so the check is re-evaluated on
// every write.
type DeadlinePolicy struct {
	cutoff time.Duration
}

// NewDeadlinePolicy creates a policy with the given cutoff before the
// scheduled start. A non-positive cutoff falls back to the default.
func NewDeadlinePolicy(cutoff time.Duration) *DeadlinePolicy {
	if cutoff <= 0 {
		cutoff = DefaultPredictionCutoff
	}
	return &DeadlinePolicy{cutoff: cutoff}
}

// Deadline returns the effective prediction deadline for a match. A group
// override takes precedence over the scheduled-time cutoff. The second
// return value is false when the match has no scheduled time, in which
// case it can never be predicted on.
func (p *DeadlinePolicy) Deadline(match *entities.Match, override *time.Time) (time.Time, bool) {
	if !match.HasSchedule() {
		return time.Time{}, false
	}

	if override != nil {
		return *override, true
	}

	return match.ScheduledAt.Add(-p.cutoff), true
}

// IsOpen reports whether predictions are still accepted for the match at
// the given instant. The boundary is exact: a submission at the deadline
// is already closed.
func (p *DeadlinePolicy) IsOpen(match *entities.Match, override *time.Time, now time.Time) bool {
	deadline, ok := p.Deadline(match, override)
	if !ok {
		return false
	}
	return now.Before(deadline)
}
