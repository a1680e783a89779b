package services

import (
	"time"

	"matchday/domain/entities"
)

// Fixture builders shared by the service tests.

func fixtureMatch(id int64, scheduledAt *time.Time, opts ...func(*entities.Match)) *entities.Match {
	match := &entities.Match{
		ID:          id,
		Sport:       "football",
		HomeTeam:    "Arsenal",
		AwayTeam:    "Chelsea",
		ScheduledAt: scheduledAt,
		Status:      entities.MatchStatusScheduled,
		CreatedAt:   time.Now(),
	}
	for _, opt := range opts {
		opt(match)
	}
	return match
}

func withResult(home, away int) func(*entities.Match) {
	return func(m *entities.Match) {
		m.Status = entities.MatchStatusFinished
		m.HomeScore = &home
		m.AwayScore = &away
	}
}

func withStatus(status entities.MatchStatus) func(*entities.Match) {
	return func(m *entities.Match) {
		m.Status = status
	}
}

func fixturePrediction(id int64, winner entities.Winner, home, away int) *entities.Prediction {
	return &entities.Prediction{
		ID:                 id,
		UserID:             id, // distinct user per prediction unless overridden
		MatchID:            1,
		GroupID:            1,
		PredictedWinner:    winner,
		PredictedHomeScore: home,
		PredictedAwayScore: away,
		Status:             entities.PredictionStatusPending,
		PlacedAt:           time.Now(),
	}
}

func fixtureGroup(id int64) *entities.Group {
	return &entities.Group{
		ID:        id,
		Name:      "office league",
		CreatedAt: time.Now(),
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
