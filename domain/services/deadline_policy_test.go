package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlinePolicy_DefaultCutoff(t *testing.T) {
	t.Parallel()

	policy := NewDeadlinePolicy(0)
	kickoff := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	match := fixtureMatch(1, timePtr(kickoff))

	deadline, ok := policy.Deadline(match, nil)
	require.True(t, ok)
	assert.Equal(t, kickoff.Add(-time.Hour), deadline)

	// One second before the cutoff is still open.
	assert.True(t, policy.IsOpen(match, nil, kickoff.Add(-time.Hour-time.Second)))

	// Exactly at the cutoff is closed; the boundary is exact.
	assert.False(t, policy.IsOpen(match, nil, kickoff.Add(-time.Hour)))

	// After the cutoff is closed.
	assert.False(t, policy.IsOpen(match, nil, kickoff.Add(-30*time.Minute)))
	assert.False(t, policy.IsOpen(match, nil, kickoff))
}

func TestDeadlinePolicy_GroupOverride(t *testing.T) {
	t.Parallel()

	policy := NewDeadlinePolicy(time.Hour)
	kickoff := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	match := fixtureMatch(1, timePtr(kickoff))

	// Override pushes the deadline past the default cutoff.
	override := kickoff.Add(-10 * time.Minute)

	deadline, ok := policy.Deadline(match, &override)
	require.True(t, ok)
	assert.Equal(t, override, deadline)

	// Open inside the default cutoff window because the override rules.
	assert.True(t, policy.IsOpen(match, &override, kickoff.Add(-30*time.Minute)))
	assert.False(t, policy.IsOpen(match, &override, kickoff.Add(-5*time.Minute)))

	// An earlier override closes the window sooner.
	early := kickoff.Add(-2 * time.Hour)
	assert.False(t, policy.IsOpen(match, &early, kickoff.Add(-90*time.Minute)))
}

func TestDeadlinePolicy_NoScheduledTime(t *testing.T) {
	t.Parallel()

	policy := NewDeadlinePolicy(time.Hour)
	match := fixtureMatch(1, nil)

	_, ok := policy.Deadline(match, nil)
	assert.False(t, ok)

	// Always closed without a schedule, even with an override configured.
	assert.False(t, policy.IsOpen(match, nil, time.Now()))
	override := time.Now().Add(24 * time.Hour)
	assert.False(t, policy.IsOpen(match, &override, time.Now()))
}

func TestDeadlinePolicy_CustomCutoff(t *testing.T) {
	t.Parallel()

	policy := NewDeadlinePolicy(15 * time.Minute)
	kickoff := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	match := fixtureMatch(1, timePtr(kickoff))

	assert.True(t, policy.IsOpen(match, nil, kickoff.Add(-16*time.Minute)))
	assert.False(t, policy.IsOpen(match, nil, kickoff.Add(-15*time.Minute)))
}
