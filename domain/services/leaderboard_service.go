package services

import (
	"context"
	"fmt"
	"sort"

	"matchday/domain"
	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

type leaderboardService struct {
	groupRepo      interfaces.GroupRepository
	predictionRepo interfaces.PredictionRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(
	groupRepo interfaces.GroupRepository,
	predictionRepo interfaces.PredictionRepository,
) interfaces.LeaderboardService {
	return &leaderboardService{
		groupRepo:      groupRepo,
		predictionRepo: predictionRepo,
	}
}

// Leaderboard returns up to limit ranked entries for a group, ordered by
// total points desc, exact-score count desc, winner-only count desc, and
// registration date asc. Ranks are strict sequential positions after the
// full ordering; no dense ranking on ties.
func (s *leaderboardService) Leaderboard(ctx context.Context, groupID int64, limit int) ([]*entities.LeaderboardEntry, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	if group == nil {
		return nil, &domain.NotFoundError{Entity: "group", ID: groupID}
	}

	entries, err := s.predictionRepo.GetGroupStandings(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings for group %d: %w", groupID, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.ExactCount != b.ExactCount {
			return a.ExactCount > b.ExactCount
		}
		if a.WinnerCount != b.WinnerCount {
			return a.WinnerCount > b.WinnerCount
		}
		if !a.RegisteredAt.Equal(b.RegisteredAt) {
			return a.RegisteredAt.Before(b.RegisteredAt)
		}
		// Full four-key tie: keep the order deterministic.
		return a.UserID < b.UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
