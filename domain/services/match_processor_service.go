package services

import (
	"context"
	"fmt"
	"time"

	"matchday/domain"
	"matchday/domain/entities"
	"matchday/domain/events"
	"matchday/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type matchProcessor struct {
	matchRepo      interfaces.MatchRepository
	predictionRepo interfaces.PredictionRepository
	eventPublisher interfaces.EventPublisher
	scoring        *ScoringService
}

// NewMatchProcessor creates a new match processor. Callers are expected to
// run Process and Void inside a transaction so scoring is all-or-nothing.
func NewMatchProcessor(
	matchRepo interfaces.MatchRepository,
	predictionRepo interfaces.PredictionRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.MatchProcessor {
	return &matchProcessor{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		eventPublisher: eventPublisher,
		scoring:        NewScoringService(),
	}
}

// Process scores every pending prediction for a finished match.
// Only pending rows are touched, so a repeated or concurrent run finds
// nothing left to score and reports zero newly processed predictions.
func (s *matchProcessor) Process(ctx context.Context, matchID int64) (*entities.ProcessingSummary, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if match == nil {
		return nil, &domain.NotFoundError{Entity: "match", ID: matchID}
	}

	if match.IsCancelled() {
		return nil, &domain.InvalidStateError{Entity: "match", ID: matchID, State: string(entities.MatchStatusCancelled)}
	}

	result, ok := match.Result()
	if !ok {
		return nil, &domain.ResultNotAvailableError{MatchID: matchID}
	}

	pending, err := s.predictionRepo.ListPendingByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending predictions for match %d: %w", matchID, err)
	}

	summary := &entities.ProcessingSummary{MatchID: matchID}
	now := time.Now()

	for _, prediction := range pending {
		points := s.scoring.Score(prediction, result)

		updated, err := s.predictionRepo.MarkProcessed(ctx, prediction.ID, points, now)
		if err != nil {
			return nil, fmt.Errorf("failed to mark prediction %d processed: %w", prediction.ID, err)
		}
		if !updated {
			// Already taken by another run; not newly processed here.
			continue
		}

		summary.Record(points)
	}

	log.WithFields(log.Fields{
		"matchID":     matchID,
		"total":       summary.Total,
		"exact":       summary.ExactCount,
		"winner":      summary.WinnerCount,
		"wrong":       summary.WrongCount,
		"totalPoints": summary.TotalPoints,
	}).Info("Processed match predictions")

	if err := s.eventPublisher.Publish(events.MatchProcessedEvent{
		MatchID:     matchID,
		Total:       summary.Total,
		ExactCount:  summary.ExactCount,
		WinnerCount: summary.WinnerCount,
		WrongCount:  summary.WrongCount,
		TotalPoints: summary.TotalPoints,
	}); err != nil {
		log.WithError(err).Error("Failed to publish match processed event")
	}

	return summary, nil
}

// Void voids every pending prediction for a cancelled match. Voided
// predictions earn no points and are excluded from leaderboards.
func (s *matchProcessor) Void(ctx context.Context, matchID int64) (int, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if match == nil {
		return 0, &domain.NotFoundError{Entity: "match", ID: matchID}
	}

	if !match.IsCancelled() {
		return 0, &domain.InvalidStateError{Entity: "match", ID: matchID, State: string(match.Status)}
	}

	voided, err := s.predictionRepo.VoidPendingByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to void predictions for match %d: %w", matchID, err)
	}

	log.WithFields(log.Fields{
		"matchID": matchID,
		"voided":  voided,
	}).Info("Voided predictions for cancelled match")

	if voided > 0 {
		if err := s.eventPublisher.Publish(events.PredictionsVoidedEvent{
			MatchID: matchID,
			Voided:  int(voided),
		}); err != nil {
			log.WithError(err).Error("Failed to publish predictions voided event")
		}
	}

	return int(voided), nil
}
