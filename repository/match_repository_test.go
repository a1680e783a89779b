package repository

import (
	"context"
	"testing"
	"time"

	"matchday/domain/entities"
	"matchday/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	t.Run("match not found", func(t *testing.T) {
		match, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("create and retrieve", func(t *testing.T) {
		created := testutil.CreateTestMatch("football", "Arsenal", "Chelsea")
		require.NoError(t, repo.Create(ctx, created))
		assert.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		match, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "Arsenal", match.HomeTeam)
		assert.Equal(t, entities.MatchStatusScheduled, match.Status)
		require.NotNil(t, match.ScheduledAt)
		assert.Nil(t, match.HomeScore)
	})

	t.Run("create without scheduled time", func(t *testing.T) {
		created := testutil.CreateTestMatch("tennis", "Alcaraz", "Sinner")
		created.ScheduledAt = nil
		require.NoError(t, repo.Create(ctx, created))

		match, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, match.ScheduledAt)
		assert.False(t, match.HasSchedule())
	})
}

func TestMatchRepository_SetResult(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	t.Run("records scores and finishes the match", func(t *testing.T) {
		match := testutil.CreateTestMatch("football", "Arsenal", "Chelsea")
		require.NoError(t, repo.Create(ctx, match))

		require.NoError(t, repo.SetResult(ctx, match.ID, 2, 1))

		stored, err := repo.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.MatchStatusFinished, stored.Status)

		result, ok := stored.Result()
		require.True(t, ok)
		assert.Equal(t, 2, result.HomeScore)
		assert.Equal(t, 1, result.AwayScore)
	})

	t.Run("negative scores rejected", func(t *testing.T) {
		match := testutil.CreateTestMatch("football", "Arsenal", "Chelsea")
		require.NoError(t, repo.Create(ctx, match))

		assert.Error(t, repo.SetResult(ctx, match.ID, -1, 0))
	})

	t.Run("match not found", func(t *testing.T) {
		err := repo.SetResult(ctx, 999999, 1, 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestMatchRepository_Cancel(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	match := testutil.CreateTestMatch("football", "Arsenal", "Chelsea")
	require.NoError(t, repo.Create(ctx, match))

	require.NoError(t, repo.Cancel(ctx, match.ID))

	stored, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCancelled())
}

func TestMatchRepository_DeadlineOverrides(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	groupRepo := NewGroupRepository(testDB.DB)
	ctx := context.Background()

	match := testutil.CreateTestMatch("football", "Arsenal", "Chelsea")
	require.NoError(t, repo.Create(ctx, match))

	group := testutil.CreateTestGroup("office-league")
	require.NoError(t, groupRepo.Create(ctx, group))

	t.Run("no override configured", func(t *testing.T) {
		deadline, err := repo.GetDeadlineOverride(ctx, match.ID, group.ID)
		require.NoError(t, err)
		assert.Nil(t, deadline)
	})

	t.Run("set and get", func(t *testing.T) {
		want := time.Now().Add(12 * time.Hour).Truncate(time.Microsecond).UTC()
		require.NoError(t, repo.SetDeadlineOverride(ctx, match.ID, group.ID, want))

		deadline, err := repo.GetDeadlineOverride(ctx, match.ID, group.ID)
		require.NoError(t, err)
		require.NotNil(t, deadline)
		assert.True(t, deadline.Equal(want))
	})

	t.Run("set replaces existing override", func(t *testing.T) {
		later := time.Now().Add(20 * time.Hour).Truncate(time.Microsecond).UTC()
		require.NoError(t, repo.SetDeadlineOverride(ctx, match.ID, group.ID, later))

		deadline, err := repo.GetDeadlineOverride(ctx, match.ID, group.ID)
		require.NoError(t, err)
		require.NotNil(t, deadline)
		assert.True(t, deadline.Equal(later))
	})
}
