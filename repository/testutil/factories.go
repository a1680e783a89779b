package testutil

import (
	"time"

	"matchday/domain/entities"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(username string) *entities.User {
	return &entities.User{
		Username: username,
	}
}

// CreateTestGroup creates a test group with default values
func CreateTestGroup(name string) *entities.Group {
	return &entities.Group{
		Name: name,
	}
}

// CreateTestMatch creates a scheduled test match kicking off in 24 hours
func CreateTestMatch(sport, homeTeam, awayTeam string) *entities.Match {
	kickoff := time.Now().Add(24 * time.Hour)
	return &entities.Match{
		Sport:       sport,
		HomeTeam:    homeTeam,
		AwayTeam:    awayTeam,
		ScheduledAt: &kickoff,
		Status:      entities.MatchStatusScheduled,
	}
}

// CreateTestMatchAt creates a scheduled test match with a specific kickoff
func CreateTestMatchAt(sport, homeTeam, awayTeam string, kickoff time.Time) *entities.Match {
	match := CreateTestMatch(sport, homeTeam, awayTeam)
	match.ScheduledAt = &kickoff
	return match
}

// CreateTestPrediction creates a pending test prediction
func CreateTestPrediction(userID, matchID, groupID int64, winner entities.Winner, home, away int) *entities.Prediction {
	return &entities.Prediction{
		UserID:             userID,
		MatchID:            matchID,
		GroupID:            groupID,
		PredictedWinner:    winner,
		PredictedHomeScore: home,
		PredictedAwayScore: away,
		Status:             entities.PredictionStatusPending,
	}
}
