package application

import (
	"fmt"

	"matchday/domain"
	"matchday/domain/services"
)

// Bus subjects consumed by this service
const (
	SubjectResultFinalized  = "matchday.results.finalized"
	SubjectMatchCancelled   = "matchday.results.cancelled"
	SubjectPredictionSubmit = "matchday.predictions.submit"
)

// RegisterApplicationSubscriptions wires the inbound subjects to their
// handlers
func RegisterApplicationSubscriptions(subscriber domain.MessageSubscriber, uowFactory UnitOfWorkFactory, policy *services.DeadlinePolicy) error {
	resultHandler := NewResultEventHandler(uowFactory)
	submissionHandler := NewPredictionSubmissionHandler(uowFactory, policy)

	if err := subscriber.Subscribe(SubjectResultFinalized, resultHandler.HandleResultFinalized); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", SubjectResultFinalized, err)
	}

	if err := subscriber.Subscribe(SubjectMatchCancelled, resultHandler.HandleMatchCancelled); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", SubjectMatchCancelled, err)
	}

	if err := subscriber.Subscribe(SubjectPredictionSubmit, submissionHandler.HandleSubmission); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", SubjectPredictionSubmit, err)
	}

	return nil
}
