// Package analytics computes emission aggregates over activity records:
// period sums, category breakdowns, community averages, leaderboard rankings
// and weekly summaries. All folds run in memory over fetched rows so the
// same logic works against both PostgreSQL and SQLite.
package analytics

import (
	"sort"
	"time"

	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/google/uuid"
)

// CommunityStats aggregates across all users: the average of per-user total
// emissions and the number of distinct users with at least one activity.
type CommunityStats struct {
	AverageEmissions float64 `json:"averageEmissions"`
	TotalUsers       int     `json:"totalUsers"`
}

// LeaderboardEntry is one ranked row. Ranking rewards low emissions: the
// lowest total comes first.
type LeaderboardEntry struct {
	UserID                 uuid.UUID `json:"userId"`
	Username               string    `json:"username"`
	TotalEmissions         float64   `json:"totalEmissions"`
	ActivityCount          int       `json:"activityCount"`
	AvgEmissionPerActivity float64   `json:"avgEmissionPerActivity"`
}

// WeekSummary is one ISO-week bucket of a user's activity.
type WeekSummary struct {
	Year              int                `json:"year"`
	Week              int                `json:"week"`
	TotalEmissions    float64            `json:"totalEmissions"`
	ActivityCount     int                `json:"activityCount"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
}

// StartOfWeek returns the most recent Sunday at local midnight.
func StartOfWeek(now time.Time) time.Time {
	day := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// StartOfMonth returns the first day of the current month at local midnight.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// StartOfYear returns January 1 of the current year at local midnight.
func StartOfYear(now time.Time) time.Time {
	return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
}

// PeriodStart maps a leaderboard period name to its lower date bound.
// The second return is false for "all" (no bound) and unknown periods.
func PeriodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case "week":
		return StartOfWeek(now), true
	case "month":
		return StartOfMonth(now), true
	case "year":
		return StartOfYear(now), true
	default:
		return time.Time{}, false
	}
}

// Total sums CO2 emissions over all given activities.
func Total(activities []models.Activity) float64 {
	var sum float64
	for _, a := range activities {
		sum += a.CO2Emission
	}
	return sum
}

// SumSince sums emissions of activities dated at or after t.
func SumSince(activities []models.Activity, t time.Time) float64 {
	var sum float64
	for _, a := range activities {
		if !a.Date.Before(t) {
			sum += a.CO2Emission
		}
	}
	return sum
}

// CategoryBreakdown folds emissions into a category -> total mapping.
func CategoryBreakdown(activities []models.Activity) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, a := range activities {
		breakdown[a.Category] += a.CO2Emission
	}
	return breakdown
}

// Community groups all activities by owner, sums per owner, then averages
// across owners. Empty input yields zero values.
func Community(activities []models.Activity) CommunityStats {
	perUser := make(map[uuid.UUID]float64)
	for _, a := range activities {
		perUser[a.UserID] += a.CO2Emission
	}
	if len(perUser) == 0 {
		return CommunityStats{}
	}
	var sum float64
	for _, total := range perUser {
		sum += total
	}
	return CommunityStats{
		AverageEmissions: sum / float64(len(perUser)),
		TotalUsers:       len(perUser),
	}
}

// Leaderboard groups the given activities by owner, joins display names and
// ranks ascending by total emissions (lowest emitter first), truncated to
// limit. Ties are broken by username to keep the ordering stable.
func Leaderboard(activities []models.Activity, usernames map[uuid.UUID]string, limit int) []LeaderboardEntry {
	type acc struct {
		total float64
		count int
	}
	perUser := make(map[uuid.UUID]*acc)
	for _, a := range activities {
		entry := perUser[a.UserID]
		if entry == nil {
			entry = &acc{}
			perUser[a.UserID] = entry
		}
		entry.total += a.CO2Emission
		entry.count++
	}

	entries := make([]LeaderboardEntry, 0, len(perUser))
	for userID, a := range perUser {
		entries = append(entries, LeaderboardEntry{
			UserID:                 userID,
			Username:               usernames[userID],
			TotalEmissions:         a.total,
			ActivityCount:          a.count,
			AvgEmissionPerActivity: a.total / float64(a.count),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalEmissions != entries[j].TotalEmissions {
			return entries[i].TotalEmissions < entries[j].TotalEmissions
		}
		return entries[i].Username < entries[j].Username
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// WeeklySummary buckets activities by ISO (year, week), producing per-week
// totals, counts and category breakdowns, sorted most recent first and
// capped to weeks entries.
func WeeklySummary(activities []models.Activity, weeks int) []WeekSummary {
	type key struct {
		year, week int
	}
	buckets := make(map[key]*WeekSummary)
	for _, a := range activities {
		y, w := a.Date.ISOWeek()
		k := key{y, w}
		b := buckets[k]
		if b == nil {
			b = &WeekSummary{
				Year:              y,
				Week:              w,
				CategoryBreakdown: make(map[string]float64),
			}
			buckets[k] = b
		}
		b.TotalEmissions += a.CO2Emission
		b.ActivityCount++
		b.CategoryBreakdown[a.Category] += a.CO2Emission
	}

	summaries := make([]WeekSummary, 0, len(buckets))
	for _, b := range buckets {
		summaries = append(summaries, *b)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year > summaries[j].Year
		}
		return summaries[i].Week > summaries[j].Week
	})

	if weeks > 0 && len(summaries) > weeks {
		summaries = summaries[:weeks]
	}
	return summaries
}

// Streak counts consecutive ISO weeks with at least one activity, ending at
// the week containing now. Summaries must be sorted most recent first (as
// WeeklySummary returns them). The walk steps a date cursor back seven days
// at a time, so streaks spanning a December to January boundary are counted
// correctly.
func Streak(summaries []WeekSummary, now time.Time) int {
	streak := 0
	cursor := now
	for _, s := range summaries {
		year, week := cursor.ISOWeek()
		if s.Year != year || s.Week != week {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -7)
	}
	return streak
}
