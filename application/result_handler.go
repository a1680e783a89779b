package application

import (
	"context"
	"encoding/json"
	"fmt"

	"matchday/application/dto"
	"matchday/domain"
	"matchday/domain/services"

	log "github.com/sirupsen/logrus"
)

// ResultEventHandler reacts to result messages from the bus: a finalized
// result triggers scoring for the match, a cancellation voids its pending
// predictions. Each message is handled in its own unit of work so scoring
// commits atomically.
type ResultEventHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewResultEventHandler creates a new result event handler
func NewResultEventHandler(uowFactory UnitOfWorkFactory) *ResultEventHandler {
	return &ResultEventHandler{uowFactory: uowFactory}
}

// HandleResultFinalized records the final result and scores every pending
// prediction for the match. Retried safely: processed rows are never
// re-scored.
func (h *ResultEventHandler) HandleResultFinalized(ctx context.Context, data []byte) error {
	var payload dto.MatchResultFinalizedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal result finalized payload: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid result finalized payload: %w", err)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.Matches().SetResult(ctx, payload.MatchID, payload.HomeScore, payload.AwayScore); err != nil {
		return fmt.Errorf("failed to record result for match %d: %w", payload.MatchID, err)
	}

	processor := services.NewMatchProcessor(uow.Matches(), uow.Predictions(), uow.Publisher())
	summary, err := processor.Process(ctx, payload.MatchID)
	if err != nil {
		if domain.IsResultNotAvailable(err) {
			// Result rejected upstream of processing; leave predictions
			// pending for a later retry.
			log.WithField("matchID", payload.MatchID).Warn("Result not available, will retry on redelivery")
		}
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit processing for match %d: %w", payload.MatchID, err)
	}

	log.WithFields(log.Fields{
		"matchID":     payload.MatchID,
		"total":       summary.Total,
		"exact":       summary.ExactCount,
		"winner":      summary.WinnerCount,
		"wrong":       summary.WrongCount,
		"totalPoints": summary.TotalPoints,
	}).Info("Match result processed")

	return nil
}

// HandleMatchCancelled cancels the match and voids its pending predictions
func (h *ResultEventHandler) HandleMatchCancelled(ctx context.Context, data []byte) error {
	var payload dto.MatchCancelledPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal match cancelled payload: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid match cancelled payload: %w", err)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.Matches().Cancel(ctx, payload.MatchID); err != nil {
		return fmt.Errorf("failed to cancel match %d: %w", payload.MatchID, err)
	}

	processor := services.NewMatchProcessor(uow.Matches(), uow.Predictions(), uow.Publisher())
	voided, err := processor.Void(ctx, payload.MatchID)
	if err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation for match %d: %w", payload.MatchID, err)
	}

	log.WithFields(log.Fields{
		"matchID": payload.MatchID,
		"voided":  voided,
		"reason":  payload.Reason,
	}).Info("Match cancelled, predictions voided")

	return nil
}
