package analytics

import (
	"testing"
	"time"

	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activity(userID uuid.UUID, category string, emission float64, date time.Time) models.Activity {
	return models.Activity{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "test",
		Category:    category,
		Amount:      1,
		Unit:        "unit",
		CO2Emission: emission,
		Date:        date,
	}
}

func TestStartOfWeek_MostRecentSundayMidnight(t *testing.T) {
	// Wednesday March 12, 2025
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	start := StartOfWeek(now)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Sunday, start.Weekday())

	// A Sunday maps to itself at midnight
	sunday := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

	start, bounded := PeriodStart("month", now)
	require.True(t, bounded)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)

	start, bounded = PeriodStart("year", now)
	require.True(t, bounded)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)

	_, bounded = PeriodStart("all", now)
	assert.False(t, bounded)
}

func TestTotalAndSumSince(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	activities := []models.Activity{
		activity(userID, models.CategoryTransport, 5, now.AddDate(0, 0, -1)),
		activity(userID, models.CategoryFood, 10, now.AddDate(0, 0, -20)),
	}

	assert.InDelta(t, 15, Total(activities), 1e-9)
	assert.InDelta(t, 5, SumSince(activities, now.AddDate(0, 0, -7)), 1e-9)
	assert.InDelta(t, 0, Total(nil), 1e-9)
}

func TestCategoryBreakdown(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	activities := []models.Activity{
		activity(userID, models.CategoryTransport, 5, now),
		activity(userID, models.CategoryTransport, 3, now),
		activity(userID, models.CategoryFood, 10, now),
	}

	breakdown := CategoryBreakdown(activities)
	assert.InDelta(t, 8, breakdown[models.CategoryTransport], 1e-9)
	assert.InDelta(t, 10, breakdown[models.CategoryFood], 1e-9)
	assert.NotContains(t, breakdown, models.CategoryEnergy)
}

func TestCommunity_AveragesAcrossUsers(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	now := time.Now()
	activities := []models.Activity{
		activity(alice, models.CategoryTransport, 10, now),
		activity(alice, models.CategoryFood, 20, now),
		activity(bob, models.CategoryEnergy, 6, now),
	}

	stats := Community(activities)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.InDelta(t, 18, stats.AverageEmissions, 1e-9) // (30 + 6) / 2
}

func TestCommunity_EmptyInput(t *testing.T) {
	stats := Community(nil)
	assert.Equal(t, 0, stats.TotalUsers)
	assert.InDelta(t, 0, stats.AverageEmissions, 1e-9)
}

func TestLeaderboard_LowestEmitterFirst(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	activities := []models.Activity{
		activity(alice, models.CategoryTransport, 5, now),
		activity(bob, models.CategoryFood, 2, now),
		activity(carol, models.CategoryEnergy, 8, now),
	}
	usernames := map[uuid.UUID]string{alice: "alice", bob: "bob", carol: "carol"}

	entries := Leaderboard(activities, usernames, 10)
	require.Len(t, entries, 3)
	assert.Equal(t, []float64{2, 5, 8}, []float64{
		entries[0].TotalEmissions, entries[1].TotalEmissions, entries[2].TotalEmissions,
	})
	assert.Equal(t, "bob", entries[0].Username)
}

func TestLeaderboard_AverageAndLimit(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	now := time.Now()
	activities := []models.Activity{
		activity(alice, models.CategoryTransport, 4, now),
		activity(alice, models.CategoryTransport, 2, now),
		activity(bob, models.CategoryFood, 20, now),
	}
	usernames := map[uuid.UUID]string{alice: "alice", bob: "bob"}

	entries := Leaderboard(activities, usernames, 1)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 2, entries[0].ActivityCount)
	assert.InDelta(t, 3, entries[0].AvgEmissionPerActivity, 1e-9)
}

func TestWeeklySummary_BucketsAndOrdering(t *testing.T) {
	userID := uuid.New()
	// Monday March 10, 2025 is ISO week 11
	thisWeek := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	lastWeek := thisWeek.AddDate(0, 0, -7)

	activities := []models.Activity{
		activity(userID, models.CategoryTransport, 5, thisWeek),
		activity(userID, models.CategoryFood, 10, thisWeek),
		activity(userID, models.CategoryFood, 3, lastWeek),
	}

	summaries := WeeklySummary(activities, 8)
	require.Len(t, summaries, 2)

	assert.Equal(t, 2025, summaries[0].Year)
	assert.Equal(t, 11, summaries[0].Week)
	assert.InDelta(t, 15, summaries[0].TotalEmissions, 1e-9)
	assert.Equal(t, 2, summaries[0].ActivityCount)
	assert.InDelta(t, 5, summaries[0].CategoryBreakdown[models.CategoryTransport], 1e-9)
	assert.InDelta(t, 10, summaries[0].CategoryBreakdown[models.CategoryFood], 1e-9)

	assert.Equal(t, 10, summaries[1].Week)
	assert.InDelta(t, 3, summaries[1].TotalEmissions, 1e-9)
}

func TestWeeklySummary_CapsToRequestedWeeks(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	var activities []models.Activity
	for i := 0; i < 5; i++ {
		activities = append(activities, activity(userID, models.CategoryOther, 1, base.AddDate(0, 0, -7*i)))
	}

	summaries := WeeklySummary(activities, 3)
	assert.Len(t, summaries, 3)
}

func TestStreak_ConsecutiveWeeks(t *testing.T) {
	userID := uuid.New()
	// Monday March 10, 2025 is ISO week 11
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	activities := []models.Activity{
		activity(userID, models.CategoryTransport, 1, now),
		activity(userID, models.CategoryTransport, 1, now.AddDate(0, 0, -7)),
		activity(userID, models.CategoryTransport, 1, now.AddDate(0, 0, -14)),
	}
	summaries := WeeklySummary(activities, 0)

	assert.Equal(t, 3, Streak(summaries, now))
}

func TestStreak_GapBreaksStreak(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Active this week and two weeks ago, nothing in between
	activities := []models.Activity{
		activity(userID, models.CategoryTransport, 1, now),
		activity(userID, models.CategoryTransport, 1, now.AddDate(0, 0, -14)),
	}
	summaries := WeeklySummary(activities, 0)

	assert.Equal(t, 1, Streak(summaries, now))
}

func TestStreak_NoActivityThisWeek(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	activities := []models.Activity{
		activity(userID, models.CategoryTransport, 1, now.AddDate(0, 0, -7)),
	}
	summaries := WeeklySummary(activities, 0)

	assert.Equal(t, 0, Streak(summaries, now))
}

func TestStreak_SurvivesYearBoundary(t *testing.T) {
	userID := uuid.New()
	// Monday January 6, 2025 is ISO week 2 of 2025;
	// ISO week 1 of 2025 starts Monday December 30, 2024.
	now := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	activities := []models.Activity{
		activity(userID, models.CategoryTransport, 1, now),
		activity(userID, models.CategoryTransport, 1, time.Date(2024, 12, 30, 12, 0, 0, 0, time.UTC)),
		activity(userID, models.CategoryTransport, 1, time.Date(2024, 12, 23, 12, 0, 0, 0, time.UTC)),
	}
	summaries := WeeklySummary(activities, 0)

	assert.Equal(t, 3, Streak(summaries, now))
}

func TestStreak_EmptySummaries(t *testing.T) {
	assert.Equal(t, 0, Streak(nil, time.Now()))
}
