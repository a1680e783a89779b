package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"matchday/application/dto"
	"matchday/domain"
	"matchday/domain/entities"
	"matchday/domain/services"

	log "github.com/sirupsen/logrus"
)

// PredictionSubmissionHandler reacts to submission messages from the bus.
// Each submission runs in its own unit of work; the deadline is re-evaluated
// against the configured cutoff on every message.
type PredictionSubmissionHandler struct {
	uowFactory UnitOfWorkFactory
	policy     *services.DeadlinePolicy
}

// NewPredictionSubmissionHandler creates a new prediction submission handler
func NewPredictionSubmissionHandler(uowFactory UnitOfWorkFactory, policy *services.DeadlinePolicy) *PredictionSubmissionHandler {
	return &PredictionSubmissionHandler{uowFactory: uowFactory, policy: policy}
}

// HandleSubmission creates or replaces the user's prediction. Domain
// rejections (deadline passed, not a member, already processed, bad input)
// are permanent for the message and acked after logging; only storage and
// conflict failures surface for redelivery.
func (h *PredictionSubmissionHandler) HandleSubmission(ctx context.Context, data []byte) error {
	var payload dto.PredictionSubmissionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal prediction submission payload: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid prediction submission payload: %w", err)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	service := services.NewPredictionService(uow.Matches(), uow.Groups(), uow.Predictions(), uow.Publisher(), h.policy)
	prediction, err := service.Submit(ctx,
		payload.UserID,
		payload.MatchID,
		payload.GroupID,
		entities.Winner(payload.PredictedWinner),
		payload.PredictedHomeScore,
		payload.PredictedAwayScore,
	)
	if err != nil {
		if isPermanentRejection(err) {
			log.WithFields(log.Fields{
				"userID":  payload.UserID,
				"matchID": payload.MatchID,
				"groupID": payload.GroupID,
				"reason":  err.Error(),
			}).Warn("Prediction submission rejected")
			return nil
		}
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit prediction for user %d: %w", payload.UserID, err)
	}

	log.WithFields(log.Fields{
		"predictionID": prediction.ID,
		"userID":       payload.UserID,
		"matchID":      payload.MatchID,
		"groupID":      payload.GroupID,
	}).Info("Prediction recorded")

	return nil
}

// isPermanentRejection reports whether the submission failed a domain rule
// that redelivering the same message cannot satisfy.
func isPermanentRejection(err error) bool {
	var (
		validationErr *domain.ValidationError
		membershipErr *domain.MembershipError
		stateErr      *domain.InvalidStateError
	)
	return domain.IsNotFound(err) ||
		domain.IsDeadlinePassed(err) ||
		errors.As(err, &validationErr) ||
		errors.As(err, &membershipErr) ||
		errors.As(err, &stateErr)
}
