package insights

import (
	"testing"
	"time"

	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createGoal(t *testing.T, userID uuid.UUID, category string, target float64, start, end time.Time) models.Goal {
	t.Helper()
	goal := models.Goal{
		UserID:          userID,
		Type:            models.GoalTypeWeekly,
		TargetReduction: target,
		Category:        category,
		StartDate:       start,
		EndDate:         end,
		Status:          models.GoalStatusActive,
	}
	require.NoError(t, database.DB.Create(&goal).Error)
	return goal
}

func TestBaselineWindow_PrecedesGoalWithEqualLength(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	goal := models.Goal{StartDate: start, EndDate: start.AddDate(0, 0, 7)}

	from, to := BaselineWindow(goal)
	assert.Equal(t, start.AddDate(0, 0, -7), from)
	assert.Equal(t, start, to)
}

func TestActualReduction_NeverNegative(t *testing.T) {
	assert.InDelta(t, 20, ActualReduction(50, 30), 1e-9)
	assert.InDelta(t, 0, ActualReduction(30, 50), 1e-9)
	assert.InDelta(t, 0, ActualReduction(0, 0), 1e-9)
}

func TestProgressPercentage(t *testing.T) {
	assert.InDelta(t, 50, ProgressPercentage(10, 20), 1e-9)
	assert.InDelta(t, 100, ProgressPercentage(40, 20), 1e-9) // capped
	assert.InDelta(t, 0, ProgressPercentage(10, 0), 1e-9)    // degenerate target
}

func TestGoalWindow(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	_, end := models.GoalWindow(models.GoalTypeWeekly, start)
	assert.Equal(t, start.AddDate(0, 0, 7), end)

	_, end = models.GoalWindow(models.GoalTypeMonthly, start)
	assert.Equal(t, time.Date(2025, 2, 15, 9, 0, 0, 0, time.UTC), end)
}

func TestUpdateGoalProgress_ComputesReductionFromBaseline(t *testing.T) {
	setupDB(t)
	user := createUser(t, "progress")
	now := time.Now()

	start := now.AddDate(0, 0, -2)
	goal := createGoal(t, user.ID, models.CategoryTransport, 25, start, start.AddDate(0, 0, 7))

	// Baseline window is the 7 days before start
	logActivity(t, user.ID, models.CategoryTransport, 30, start.AddDate(0, 0, -3))
	// Current window
	logActivity(t, user.ID, models.CategoryTransport, 10, now.AddDate(0, 0, -1))
	// Other category is ignored for a transport goal
	logActivity(t, user.ID, models.CategoryFood, 100, now.AddDate(0, 0, -1))

	require.NoError(t, UpdateGoalProgress(user.ID))

	var updated models.Goal
	require.NoError(t, database.DB.First(&updated, goal.ID).Error)
	assert.InDelta(t, 20, updated.CurrentProgress, 1e-9)
	assert.Equal(t, models.GoalStatusActive, updated.Status) // 20 < 25
}

func TestUpdateGoalProgress_Idempotent(t *testing.T) {
	setupDB(t)
	user := createUser(t, "idempotent")
	now := time.Now()

	start := now.AddDate(0, 0, -2)
	goal := createGoal(t, user.ID, models.CategoryOverall, 100, start, start.AddDate(0, 0, 7))

	logActivity(t, user.ID, models.CategoryTransport, 40, start.AddDate(0, 0, -1))
	logActivity(t, user.ID, models.CategoryFood, 15, now.AddDate(0, 0, -1))

	require.NoError(t, UpdateGoalProgress(user.ID))
	var first models.Goal
	require.NoError(t, database.DB.First(&first, goal.ID).Error)

	require.NoError(t, UpdateGoalProgress(user.ID))
	var second models.Goal
	require.NoError(t, database.DB.First(&second, goal.ID).Error)

	assert.InDelta(t, first.CurrentProgress, second.CurrentProgress, 1e-9)
	assert.InDelta(t, 25, second.CurrentProgress, 1e-9)
}

func TestUpdateGoalProgress_CompletesGoalAtTarget(t *testing.T) {
	setupDB(t)
	user := createUser(t, "achiever")
	now := time.Now()

	start := now.AddDate(0, 0, -2)
	goal := createGoal(t, user.ID, models.CategoryFood, 20, start, start.AddDate(0, 0, 7))

	// Exactly the target: 20 baseline, 0 current
	logActivity(t, user.ID, models.CategoryFood, 20, start.AddDate(0, 0, -1))

	require.NoError(t, UpdateGoalProgress(user.ID))

	var updated models.Goal
	require.NoError(t, database.DB.First(&updated, goal.ID).Error)
	assert.Equal(t, models.GoalStatusCompleted, updated.Status)
	assert.InDelta(t, 20, updated.CurrentProgress, 1e-9)

	var achievement models.Insight
	require.NoError(t, database.DB.Where(
		"user_id = ? AND type = ?", user.ID, models.InsightTypeAchievement,
	).First(&achievement).Error)
	assert.Equal(t, models.CategoryFood, achievement.Category)
	assert.Contains(t, achievement.Message, "20.0 kg CO2")
	assert.Equal(t, models.PriorityHigh, achievement.Priority)
}

func TestUpdateGoalProgress_NotCompletedBelowTarget(t *testing.T) {
	setupDB(t)
	user := createUser(t, "almost")
	now := time.Now()

	start := now.AddDate(0, 0, -2)
	goal := createGoal(t, user.ID, models.CategoryFood, 20.01, start, start.AddDate(0, 0, 7))

	logActivity(t, user.ID, models.CategoryFood, 20, start.AddDate(0, 0, -1))

	require.NoError(t, UpdateGoalProgress(user.ID))

	var updated models.Goal
	require.NoError(t, database.DB.First(&updated, goal.ID).Error)
	assert.Equal(t, models.GoalStatusActive, updated.Status)
}

func TestUpdateGoalProgress_ZeroCreditWhenEmissionsRise(t *testing.T) {
	setupDB(t)
	user := createUser(t, "riser")
	now := time.Now()

	start := now.AddDate(0, 0, -2)
	goal := createGoal(t, user.ID, models.CategoryEnergy, 5, start, start.AddDate(0, 0, 7))

	logActivity(t, user.ID, models.CategoryEnergy, 10, start.AddDate(0, 0, -1)) // baseline
	logActivity(t, user.ID, models.CategoryEnergy, 25, now.AddDate(0, 0, -1))  // current, higher

	require.NoError(t, UpdateGoalProgress(user.ID))

	var updated models.Goal
	require.NoError(t, database.DB.First(&updated, goal.ID).Error)
	assert.InDelta(t, 0, updated.CurrentProgress, 1e-9)
	assert.Equal(t, models.GoalStatusActive, updated.Status)
}

func TestUpdateGoalProgress_SkipsExpiredAndCompletedGoals(t *testing.T) {
	setupDB(t)
	user := createUser(t, "skipper")
	now := time.Now()

	expired := createGoal(t, user.ID, models.CategoryFood, 5,
		now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))

	done := createGoal(t, user.ID, models.CategoryEnergy, 5,
		now.AddDate(0, 0, -2), now.AddDate(0, 0, 5))
	require.NoError(t, database.DB.Model(&done).Updates(map[string]interface{}{
		"status":           models.GoalStatusCompleted,
		"current_progress": 7.0,
	}).Error)

	logActivity(t, user.ID, models.CategoryFood, 50, now.AddDate(0, 0, -10))

	require.NoError(t, UpdateGoalProgress(user.ID))

	var g models.Goal
	require.NoError(t, database.DB.First(&g, expired.ID).Error)
	assert.InDelta(t, 0, g.CurrentProgress, 1e-9) // untouched

	g = models.Goal{}
	require.NoError(t, database.DB.First(&g, done.ID).Error)
	assert.InDelta(t, 7, g.CurrentProgress, 1e-9) // untouched
}
