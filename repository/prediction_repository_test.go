package repository

import (
	"context"
	"testing"
	"time"

	"matchday/domain"
	"matchday/domain/entities"
	"matchday/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedContestData creates a user, a group with that user as member, and a
// scheduled match, returning their ids.
func seedContestData(t *testing.T, testDB *testutil.TestDatabase) (userID, matchID, groupID int64) {
	ctx := context.Background()

	user := testutil.CreateTestUser("alice")
	require.NoError(t, NewUserRepository(testDB.DB).Create(ctx, user))

	group := testutil.CreateTestGroup("office-league")
	groupRepo := NewGroupRepository(testDB.DB)
	require.NoError(t, groupRepo.Create(ctx, group))
	require.NoError(t, groupRepo.AddMember(ctx, group.ID, user.ID))

	match := testutil.CreateTestMatch("football", "Arsenal", "Chelsea")
	require.NoError(t, NewMatchRepository(testDB.DB).Create(ctx, match))

	return user.ID, match.ID, group.ID
}

func TestPredictionRepository_Upsert(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()
	userID, matchID, groupID := seedContestData(t, testDB)

	t.Run("insert new prediction", func(t *testing.T) {
		prediction := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerHome, 2, 1)

		err := repo.Upsert(ctx, prediction)
		require.NoError(t, err)

		assert.NotZero(t, prediction.ID)
		assert.Equal(t, entities.PredictionStatusPending, prediction.Status)
		assert.Equal(t, 0, prediction.PointsEarned)
		assert.False(t, prediction.PlacedAt.IsZero())
	})

	t.Run("resubmission replaces pending prediction", func(t *testing.T) {
		first := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerHome, 2, 1)
		require.NoError(t, repo.Upsert(ctx, first))

		second := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerAway, 0, 3)
		require.NoError(t, repo.Upsert(ctx, second))

		// Same row, updated payload.
		assert.Equal(t, first.ID, second.ID)

		stored, err := repo.GetByKey(ctx, userID, matchID, groupID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, entities.WinnerAway, stored.PredictedWinner)
		assert.Equal(t, 0, stored.PredictedHomeScore)
		assert.Equal(t, 3, stored.PredictedAwayScore)
		assert.Equal(t, entities.PredictionStatusPending, stored.Status)

		// placed_at reflects the later submission.
		assert.True(t, stored.PlacedAt.After(first.PlacedAt),
			"placed_at %s should be after first submission %s", stored.PlacedAt, first.PlacedAt)
	})

	t.Run("resubmission rejected once processed", func(t *testing.T) {
		prediction := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerHome, 1, 0)
		require.NoError(t, repo.Upsert(ctx, prediction))

		updated, err := repo.MarkProcessed(ctx, prediction.ID, entities.PointsExact, time.Now())
		require.NoError(t, err)
		require.True(t, updated)

		replacement := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerDraw, 1, 1)
		err = repo.Upsert(ctx, replacement)

		var stateErr *domain.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "processed", stateErr.State)

		// The processed row is untouched.
		stored, err := repo.GetByKey(ctx, userID, matchID, groupID)
		require.NoError(t, err)
		assert.Equal(t, entities.WinnerHome, stored.PredictedWinner)
		assert.Equal(t, entities.PointsExact, stored.PointsEarned)
	})
}

func TestPredictionRepository_GetByKey(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()
	userID, matchID, groupID := seedContestData(t, testDB)

	t.Run("not found", func(t *testing.T) {
		prediction, err := repo.GetByKey(ctx, userID, matchID+1000, groupID)
		require.NoError(t, err)
		assert.Nil(t, prediction)
	})

	t.Run("found", func(t *testing.T) {
		created := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerDraw, 1, 1)
		require.NoError(t, repo.Upsert(ctx, created))

		prediction, err := repo.GetByKey(ctx, userID, matchID, groupID)
		require.NoError(t, err)
		require.NotNil(t, prediction)
		assert.Equal(t, created.ID, prediction.ID)
		assert.Equal(t, entities.WinnerDraw, prediction.PredictedWinner)
	})
}

func TestPredictionRepository_MarkProcessed(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()
	userID, matchID, groupID := seedContestData(t, testDB)

	prediction := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerHome, 2, 1)
	require.NoError(t, repo.Upsert(ctx, prediction))

	t.Run("first run processes the row", func(t *testing.T) {
		updated, err := repo.MarkProcessed(ctx, prediction.ID, entities.PointsWinner, time.Now())
		require.NoError(t, err)
		assert.True(t, updated)

		stored, err := repo.GetByKey(ctx, userID, matchID, groupID)
		require.NoError(t, err)
		assert.Equal(t, entities.PredictionStatusProcessed, stored.Status)
		assert.Equal(t, entities.PointsWinner, stored.PointsEarned)
		require.NotNil(t, stored.ProcessedAt)
	})

	t.Run("second run finds nothing to do", func(t *testing.T) {
		updated, err := repo.MarkProcessed(ctx, prediction.ID, entities.PointsExact, time.Now())
		require.NoError(t, err)
		assert.False(t, updated)

		// Points from the first run stand.
		stored, err := repo.GetByKey(ctx, userID, matchID, groupID)
		require.NoError(t, err)
		assert.Equal(t, entities.PointsWinner, stored.PointsEarned)
	})
}

func TestPredictionRepository_VoidPendingByMatch(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()
	userID, matchID, groupID := seedContestData(t, testDB)

	// Second user with a prediction on the same match.
	user2 := testutil.CreateTestUser("bob")
	require.NoError(t, NewUserRepository(testDB.DB).Create(ctx, user2))
	require.NoError(t, NewGroupRepository(testDB.DB).AddMember(ctx, groupID, user2.ID))

	p1 := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerHome, 2, 1)
	require.NoError(t, repo.Upsert(ctx, p1))
	p2 := testutil.CreateTestPrediction(user2.ID, matchID, groupID, entities.WinnerAway, 0, 1)
	require.NoError(t, repo.Upsert(ctx, p2))

	// One already processed; voiding must not touch it.
	updated, err := repo.MarkProcessed(ctx, p1.ID, entities.PointsExact, time.Now())
	require.NoError(t, err)
	require.True(t, updated)

	voided, err := repo.VoidPendingByMatch(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), voided)

	stored1, err := repo.GetByKey(ctx, userID, matchID, groupID)
	require.NoError(t, err)
	assert.Equal(t, entities.PredictionStatusProcessed, stored1.Status)

	stored2, err := repo.GetByKey(ctx, user2.ID, matchID, groupID)
	require.NoError(t, err)
	assert.Equal(t, entities.PredictionStatusVoided, stored2.Status)
	assert.Equal(t, 0, stored2.PointsEarned)

	// Idempotent: nothing pending remains.
	voided, err = repo.VoidPendingByMatch(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), voided)
}

func TestPredictionRepository_ListPendingByMatch(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()
	userID, matchID, groupID := seedContestData(t, testDB)

	t.Run("empty match", func(t *testing.T) {
		pending, err := repo.ListPendingByMatch(ctx, matchID)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("only pending rows are returned", func(t *testing.T) {
		user2 := testutil.CreateTestUser("carol")
		require.NoError(t, NewUserRepository(testDB.DB).Create(ctx, user2))
		require.NoError(t, NewGroupRepository(testDB.DB).AddMember(ctx, groupID, user2.ID))

		p1 := testutil.CreateTestPrediction(userID, matchID, groupID, entities.WinnerHome, 1, 0)
		require.NoError(t, repo.Upsert(ctx, p1))
		p2 := testutil.CreateTestPrediction(user2.ID, matchID, groupID, entities.WinnerDraw, 2, 2)
		require.NoError(t, repo.Upsert(ctx, p2))

		updated, err := repo.MarkProcessed(ctx, p1.ID, entities.PointsNone, time.Now())
		require.NoError(t, err)
		require.True(t, updated)

		pending, err := repo.ListPendingByMatch(ctx, matchID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, p2.ID, pending[0].ID)
	})
}

func TestPredictionRepository_GetUserStats(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()
	userID, _, groupID := seedContestData(t, testDB)

	matchRepo := NewMatchRepository(testDB.DB)

	// Three processed predictions: one exact, one winner-only, one wrong.
	// A fourth stays pending and must not count.
	points := []int{entities.PointsExact, entities.PointsWinner, entities.PointsNone}
	for _, p := range points {
		match := testutil.CreateTestMatch("football", "Home", "Away")
		require.NoError(t, matchRepo.Create(ctx, match))

		prediction := testutil.CreateTestPrediction(userID, match.ID, groupID, entities.WinnerHome, 1, 0)
		require.NoError(t, repo.Upsert(ctx, prediction))

		updated, err := repo.MarkProcessed(ctx, prediction.ID, p, time.Now())
		require.NoError(t, err)
		require.True(t, updated)
	}

	pendingMatch := testutil.CreateTestMatch("football", "Home", "Away")
	require.NoError(t, matchRepo.Create(ctx, pendingMatch))
	pending := testutil.CreateTestPrediction(userID, pendingMatch.ID, groupID, entities.WinnerDraw, 0, 0)
	require.NoError(t, repo.Upsert(ctx, pending))

	stats, err := repo.GetUserStats(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalPredictions)
	assert.Equal(t, 4, stats.TotalPoints)
	assert.Equal(t, 1, stats.ExactCount)
	assert.Equal(t, 1, stats.WinnerCount)
	assert.Equal(t, 1, stats.WrongCount)
}

func TestPredictionRepository_GetGroupStandings(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()
	userID, _, groupID := seedContestData(t, testDB)

	userRepo := NewUserRepository(testDB.DB)
	groupRepo := NewGroupRepository(testDB.DB)
	matchRepo := NewMatchRepository(testDB.DB)

	user2 := testutil.CreateTestUser("bob")
	require.NoError(t, userRepo.Create(ctx, user2))
	require.NoError(t, groupRepo.AddMember(ctx, groupID, user2.ID))

	// alice: one exact (3 points). bob: two winner-only (2 points).
	process := func(uid int64, awards []int) {
		for _, points := range awards {
			match := testutil.CreateTestMatch("football", "Home", "Away")
			require.NoError(t, matchRepo.Create(ctx, match))

			prediction := testutil.CreateTestPrediction(uid, match.ID, groupID, entities.WinnerHome, 1, 0)
			require.NoError(t, repo.Upsert(ctx, prediction))

			updated, err := repo.MarkProcessed(ctx, prediction.ID, points, time.Now())
			require.NoError(t, err)
			require.True(t, updated)
		}
	}
	process(userID, []int{entities.PointsExact})
	process(user2.ID, []int{entities.PointsWinner, entities.PointsWinner})

	entries, err := repo.GetGroupStandings(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, userID, entries[0].UserID)
	assert.Equal(t, 3, entries[0].TotalPoints)
	assert.Equal(t, 1, entries[0].ExactCount)
	assert.Equal(t, "alice", entries[0].Username)

	assert.Equal(t, user2.ID, entries[1].UserID)
	assert.Equal(t, 2, entries[1].TotalPoints)
	assert.Equal(t, 2, entries[1].WinnerCount)

	t.Run("other groups are excluded", func(t *testing.T) {
		other := testutil.CreateTestGroup("rival-league")
		require.NoError(t, groupRepo.Create(ctx, other))

		entries, err := repo.GetGroupStandings(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
