package services

import (
	"context"
	"fmt"

	"matchday/domain"
	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

type statsService struct {
	userRepo       interfaces.UserRepository
	predictionRepo interfaces.PredictionRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	userRepo interfaces.UserRepository,
	predictionRepo interfaces.PredictionRepository,
) interfaces.StatsService {
	return &statsService{
		userRepo:       userRepo,
		predictionRepo: predictionRepo,
	}
}

// GetUserStats returns summary statistics over a user's processed predictions
func (s *statsService) GetUserStats(ctx context.Context, userID int64) (*entities.PredictionStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, &domain.NotFoundError{Entity: "user", ID: userID}
	}

	stats, err := s.predictionRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction stats for user %d: %w", userID, err)
	}

	stats.CalculateRates()
	return stats, nil
}

// GetUserPredictions returns a user's predictions, most recent first
func (s *statsService) GetUserPredictions(ctx context.Context, userID int64, limit int) ([]*entities.Prediction, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, &domain.NotFoundError{Entity: "user", ID: userID}
	}

	predictions, err := s.predictionRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for user %d: %w", userID, err)
	}

	return predictions, nil
}
