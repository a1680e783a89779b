package domain

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError indicates a referenced entity does not exist.
// Surfaced to callers as a client error; never retried.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// DeadlinePassedError indicates a submission arrived after the match's
// effective prediction deadline. Permanent for that match.
type DeadlinePassedError struct {
	MatchID  int64
	GroupID  int64
	Deadline time.Time
}

func (e *DeadlinePassedError) Error() string {
	return fmt.Sprintf("prediction deadline for match %d in group %d passed at %s",
		e.MatchID, e.GroupID, e.Deadline.Format(time.RFC3339))
}

// MembershipError indicates the user is not a member of the group.
// Permanent until membership changes externally.
type MembershipError struct {
	UserID  int64
	GroupID int64
}

func (e *MembershipError) Error() string {
	return fmt.Sprintf("user %d is not a member of group %d", e.UserID, e.GroupID)
}

// ResultNotAvailableError indicates a match cannot be processed because no
// result has been recorded yet. The one retryable condition: callers may
// retry once a result exists upstream.
type ResultNotAvailableError struct {
	MatchID int64
}

func (e *ResultNotAvailableError) Error() string {
	return fmt.Sprintf("no result recorded for match %d", e.MatchID)
}

// ValidationError indicates malformed input (negative scores, unknown
// winner value). Rejected immediately, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidStateError indicates an operation hit an entity in a state that
// does not permit it, such as resubmitting over a processed prediction.
type InvalidStateError struct {
	Entity string
	ID     int64
	State  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %d is %s", e.Entity, e.ID, e.State)
}

// ConflictError indicates a storage-layer conflict during a concurrent
// write. Retried internally a bounded number of times before surfacing.
type ConflictError struct {
	Key string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent write conflict on %s", e.Key)
}

// IsNotFound checks if the error is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsDeadlinePassed checks if the error is a DeadlinePassedError
func IsDeadlinePassed(err error) bool {
	var target *DeadlinePassedError
	return errors.As(err, &target)
}

// IsResultNotAvailable checks if the error is a ResultNotAvailableError
func IsResultNotAvailable(err error) bool {
	var target *ResultNotAvailableError
	return errors.As(err, &target)
}

// IsConflict checks if the error is a ConflictError
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
