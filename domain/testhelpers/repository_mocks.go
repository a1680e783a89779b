package testhelpers

import (
	"context"
	"time"

	"matchday/domain/entities"
	"matchday/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockGroupRepository is a mock implementation of GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id int64) (*entities.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Group), args.Error(1)
}

func (m *MockGroupRepository) Create(ctx context.Context, group *entities.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) Create(ctx context.Context, match *entities.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) SetResult(ctx context.Context, id int64, homeScore, awayScore int) error {
	args := m.Called(ctx, id, homeScore, awayScore)
	return args.Error(0)
}

func (m *MockMatchRepository) Cancel(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMatchRepository) GetDeadlineOverride(ctx context.Context, matchID, groupID int64) (*time.Time, error) {
	args := m.Called(ctx, matchID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockMatchRepository) SetDeadlineOverride(ctx context.Context, matchID, groupID int64, deadline time.Time) error {
	args := m.Called(ctx, matchID, groupID, deadline)
	return args.Error(0)
}

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Upsert(ctx context.Context, prediction *entities.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetByKey(ctx context.Context, userID, matchID, groupID int64) (*entities.Prediction, error) {
	args := m.Called(ctx, userID, matchID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ListPendingByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) MarkProcessed(ctx context.Context, id int64, points int, processedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, points, processedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockPredictionRepository) VoidPendingByMatch(ctx context.Context, matchID int64) (int64, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPredictionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.Prediction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) GetUserStats(ctx context.Context, userID int64) (*entities.PredictionStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PredictionStats), args.Error(1)
}

func (m *MockPredictionRepository) GetGroupStandings(ctx context.Context, groupID int64) ([]*entities.LeaderboardEntry, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LeaderboardEntry), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
