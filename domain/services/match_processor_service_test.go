package services

import (
	"context"
	"testing"
	"time"

	"matchday/domain"
	"matchday/domain/entities"
	"matchday/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupMatchProcessorMocks() (
	*testhelpers.MockMatchRepository,
	*testhelpers.MockPredictionRepository,
	*testhelpers.MockEventPublisher,
) {
	return new(testhelpers.MockMatchRepository),
		new(testhelpers.MockPredictionRepository),
		new(testhelpers.MockEventPublisher)
}

func TestMatchProcessor_Process_ScoresAllPending(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	kickoff := time.Now().Add(-2 * time.Hour)
	match := fixtureMatch(10, timePtr(kickoff), withStatus(entities.MatchStatusFinished), withResult(2, 1))

	pending := []*entities.Prediction{
		fixturePrediction(1, entities.WinnerHome, 2, 1), // exact
		fixturePrediction(2, entities.WinnerHome, 1, 0), // winner only
		fixturePrediction(3, entities.WinnerAway, 0, 2), // wrong
		fixturePrediction(4, entities.WinnerDraw, 1, 1), // wrong
	}

	matchRepo.On("GetByID", ctx, int64(10)).Return(match, nil)
	predictionRepo.On("ListPendingByMatch", ctx, int64(10)).Return(pending, nil)
	predictionRepo.On("MarkProcessed", ctx, int64(1), entities.PointsExact, mock.AnythingOfType("time.Time")).Return(true, nil)
	predictionRepo.On("MarkProcessed", ctx, int64(2), entities.PointsWinner, mock.AnythingOfType("time.Time")).Return(true, nil)
	predictionRepo.On("MarkProcessed", ctx, int64(3), entities.PointsNone, mock.AnythingOfType("time.Time")).Return(true, nil)
	predictionRepo.On("MarkProcessed", ctx, int64(4), entities.PointsNone, mock.AnythingOfType("time.Time")).Return(true, nil)
	publisher.On("Publish", mock.AnythingOfType("events.MatchProcessedEvent")).Return(nil)

	summary, err := processor.Process(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.ExactCount)
	assert.Equal(t, 1, summary.WinnerCount)
	assert.Equal(t, 2, summary.WrongCount)
	assert.Equal(t, 4, summary.TotalPoints)
	predictionRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestMatchProcessor_Process_SecondRunFindsNothing(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	match := fixtureMatch(10, timePtr(time.Now().Add(-2*time.Hour)), withStatus(entities.MatchStatusFinished), withResult(2, 1))

	matchRepo.On("GetByID", ctx, int64(10)).Return(match, nil)
	predictionRepo.On("ListPendingByMatch", ctx, int64(10)).Return([]*entities.Prediction{}, nil)
	publisher.On("Publish", mock.AnythingOfType("events.MatchProcessedEvent")).Return(nil)

	summary, err := processor.Process(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.TotalPoints)
	predictionRepo.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchProcessor_Process_SkipsRowsTakenByConcurrentRun(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	match := fixtureMatch(10, timePtr(time.Now().Add(-2*time.Hour)), withStatus(entities.MatchStatusFinished), withResult(1, 0))

	pending := []*entities.Prediction{
		fixturePrediction(1, entities.WinnerHome, 1, 0),
		fixturePrediction(2, entities.WinnerHome, 2, 0),
	}

	matchRepo.On("GetByID", ctx, int64(10)).Return(match, nil)
	predictionRepo.On("ListPendingByMatch", ctx, int64(10)).Return(pending, nil)
	predictionRepo.On("MarkProcessed", ctx, int64(1), entities.PointsExact, mock.AnythingOfType("time.Time")).Return(true, nil)
	// Row 2 was already processed by a racing run.
	predictionRepo.On("MarkProcessed", ctx, int64(2), entities.PointsWinner, mock.AnythingOfType("time.Time")).Return(false, nil)
	publisher.On("Publish", mock.AnythingOfType("events.MatchProcessedEvent")).Return(nil)

	summary, err := processor.Process(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.ExactCount)
	assert.Equal(t, 3, summary.TotalPoints)
}

func TestMatchProcessor_Process_ResultNotAvailable(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	match := fixtureMatch(10, timePtr(time.Now().Add(-2*time.Hour)), withStatus(entities.MatchStatusFinished))

	matchRepo.On("GetByID", ctx, int64(10)).Return(match, nil)

	_, err := processor.Process(ctx, 10)

	require.Error(t, err)
	assert.True(t, domain.IsResultNotAvailable(err))
	predictionRepo.AssertNotCalled(t, "ListPendingByMatch", mock.Anything, mock.Anything)
}

func TestMatchProcessor_Process_CancelledMatch(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	match := fixtureMatch(10, timePtr(time.Now().Add(-2*time.Hour)), withStatus(entities.MatchStatusCancelled))

	matchRepo.On("GetByID", ctx, int64(10)).Return(match, nil)

	_, err := processor.Process(ctx, 10)

	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "cancelled", stateErr.State)
	predictionRepo.AssertNotCalled(t, "ListPendingByMatch", mock.Anything, mock.Anything)
}

func TestMatchProcessor_Process_MatchNotFound(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	matchRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, err := processor.Process(ctx, 99)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestMatchProcessor_Void_CancelledMatch(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	match := fixtureMatch(10, timePtr(time.Now().Add(time.Hour)), withStatus(entities.MatchStatusCancelled))

	matchRepo.On("GetByID", ctx, int64(10)).Return(match, nil)
	predictionRepo.On("VoidPendingByMatch", ctx, int64(10)).Return(int64(3), nil)
	publisher.On("Publish", mock.AnythingOfType("events.PredictionsVoidedEvent")).Return(nil)

	voided, err := processor.Void(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, 3, voided)
	publisher.AssertExpectations(t)
}

func TestMatchProcessor_Void_NothingToVoid(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	match := fixtureMatch(10, timePtr(time.Now().Add(time.Hour)), withStatus(entities.MatchStatusCancelled))

	matchRepo.On("GetByID", ctx, int64(10)).Return(match, nil)
	predictionRepo.On("VoidPendingByMatch", ctx, int64(10)).Return(int64(0), nil)

	voided, err := processor.Void(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, 0, voided)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestMatchProcessor_Void_MatchNotCancelled(t *testing.T) {
	t.Parallel()

	matchRepo, predictionRepo, publisher := setupMatchProcessorMocks()
	processor := NewMatchProcessor(matchRepo, predictionRepo, publisher)

	ctx := context.Background()
	match := fixtureMatch(10, timePtr(time.Now().Add(-2*time.Hour)), withStatus(entities.MatchStatusFinished), withResult(1, 1))

	matchRepo.On("GetByID", ctx, int64(10)).Return(match, nil)

	_, err := processor.Void(ctx, 10)

	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	predictionRepo.AssertNotCalled(t, "VoidPendingByMatch", mock.Anything, mock.Anything)
}
