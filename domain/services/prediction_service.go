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

// maxUpsertAttempts bounds internal retries on storage conflicts during
// concurrent submissions for the same (user, match, group) key.
const maxUpsertAttempts = 3

type predictionService struct {
	matchRepo      interfaces.MatchRepository
	groupRepo      interfaces.GroupRepository
	predictionRepo interfaces.PredictionRepository
	eventPublisher interfaces.EventPublisher
	policy         *DeadlinePolicy
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	matchRepo interfaces.MatchRepository,
	groupRepo interfaces.GroupRepository,
	predictionRepo interfaces.PredictionRepository,
	eventPublisher interfaces.EventPublisher,
	policy *DeadlinePolicy,
) interfaces.PredictionService {
	return &predictionService{
		matchRepo:      matchRepo,
		groupRepo:      groupRepo,
		predictionRepo: predictionRepo,
		eventPublisher: eventPublisher,
		policy:         policy,
	}
}

// Submit creates or replaces the user's prediction for a match within a group
func (s *predictionService) Submit(ctx context.Context, userID, matchID, groupID int64, winner entities.Winner, homeScore, awayScore int) (*entities.Prediction, error) {
	if !winner.IsValid() {
		return nil, &domain.ValidationError{Field: "predicted_winner", Reason: fmt.Sprintf("unknown value %q", winner)}
	}
	if homeScore < 0 || awayScore < 0 {
		return nil, &domain.ValidationError{Field: "predicted_score", Reason: "scores must be non-negative"}
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if match == nil {
		return nil, &domain.NotFoundError{Entity: "match", ID: matchID}
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	if group == nil {
		return nil, &domain.NotFoundError{Entity: "group", ID: groupID}
	}

	member, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership of user %d in group %d: %w", userID, groupID, err)
	}
	if !member {
		return nil, &domain.MembershipError{UserID: userID, GroupID: groupID}
	}

	override, err := s.matchRepo.GetDeadlineOverride(ctx, matchID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deadline override for match %d: %w", matchID, err)
	}

	if !s.policy.IsOpen(match, override, time.Now()) {
		deadline, _ := s.policy.Deadline(match, override)
		return nil, &domain.DeadlinePassedError{MatchID: matchID, GroupID: groupID, Deadline: deadline}
	}

	prediction := &entities.Prediction{
		UserID:             userID,
		MatchID:            matchID,
		GroupID:            groupID,
		PredictedWinner:    winner,
		PredictedHomeScore: homeScore,
		PredictedAwayScore: awayScore,
		PointsEarned:       entities.PointsNone,
		Status:             entities.PredictionStatusPending,
	}

	// The unique (user, match, group) key is the serialization point for
	// concurrent submissions. Conflicts are retried a bounded number of
	// times before surfacing.
	for attempt := 1; ; attempt++ {
		err = s.predictionRepo.Upsert(ctx, prediction)
		if err == nil {
			break
		}
		if !domain.IsConflict(err) || attempt >= maxUpsertAttempts {
			return nil, err
		}
		log.WithFields(log.Fields{
			"userID":  userID,
			"matchID": matchID,
			"groupID": groupID,
			"attempt": attempt,
		}).Warn("Retrying prediction upsert after conflict")
	}

	if err := s.eventPublisher.Publish(events.PredictionPlacedEvent{
		PredictionID:    prediction.ID,
		UserID:          userID,
		MatchID:         matchID,
		GroupID:         groupID,
		PredictedWinner: string(winner),
		PredictedHome:   homeScore,
		PredictedAway:   awayScore,
	}); err != nil {
		log.WithError(err).Error("Failed to publish prediction placed event")
	}

	return prediction, nil
}
