package insights

import (
	"math"
	"strconv"
	"time"

	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/ecotrack/footprint-api/internal/realtime"
	"github.com/ecotrack/footprint-api/internal/services"
	"github.com/google/uuid"
)

// BaselineWindow returns the comparison window immediately preceding the
// goal's start, of the same length as the goal window itself.
func BaselineWindow(goal models.Goal) (time.Time, time.Time) {
	length := goal.EndDate.Sub(goal.StartDate)
	return goal.StartDate.Add(-length), goal.StartDate
}

// ActualReduction is the emission reduction achieved against the baseline.
// An increase in emissions yields zero credit, never negative progress.
func ActualReduction(baseline, current float64) float64 {
	return math.Max(0, baseline-current)
}

// ProgressPercentage is the display percentage of a goal, capped at 100.
func ProgressPercentage(progress, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(100, progress/target*100)
}

// UpdateGoalProgress recomputes progress for every active, unexpired goal of
// the user. The snapshot is derived from activities each time (overwritten,
// not accumulated), so the operation is idempotent for a fixed activity set.
// A goal whose reduction reaches its target transitions to completed and an
// achievement insight is created.
func UpdateGoalProgress(userID uuid.UUID) error {
	now := time.Now()

	var activeGoals []models.Goal
	if err := database.DB.Where(
		"user_id = ? AND status = ? AND end_date > ?",
		userID, models.GoalStatusActive, now,
	).Find(&activeGoals).Error; err != nil {
		return err
	}

	for i := range activeGoals {
		goal := &activeGoals[i]

		currentEmissions, err := sumEmissions(userID, goal.Category, goal.StartDate, now, true)
		if err != nil {
			return err
		}

		baselineStart, baselineEnd := BaselineWindow(*goal)
		baselineEmissions, err := sumEmissions(userID, goal.Category, baselineStart, baselineEnd, false)
		if err != nil {
			return err
		}

		actualReduction := ActualReduction(baselineEmissions, currentEmissions)
		goal.CurrentProgress = actualReduction

		if actualReduction >= goal.TargetReduction {
			goal.Status = models.GoalStatusCompleted
		}

		if err := database.DB.Save(goal).Error; err != nil {
			return err
		}

		if goal.Status == models.GoalStatusCompleted {
			if err := createAchievement(userID, *goal, actualReduction); err != nil {
				return err
			}
		}
	}

	return nil
}

// sumEmissions totals co2_emission for the user's activities in [from, to]
// (or [from, to) when includeEnd is false), optionally filtered by category.
// An "overall" goal counts every category.
func sumEmissions(userID uuid.UUID, category string, from, to time.Time, includeEnd bool) (float64, error) {
	query := database.DB.Model(&models.Activity{}).
		Where("user_id = ? AND date >= ?", userID, from)
	if includeEnd {
		query = query.Where("date <= ?", to)
	} else {
		query = query.Where("date < ?", to)
	}
	if category != models.CategoryOverall {
		query = query.Where("category = ?", category)
	}

	var sum float64
	err := query.Select("COALESCE(SUM(co2_emission), 0)").Scan(&sum).Error
	return sum, err
}

func createAchievement(userID uuid.UUID, goal models.Goal, actualReduction float64) error {
	message := "Congratulations! You've reduced your " + goal.Category +
		" emissions by " + strconv.FormatFloat(actualReduction, 'f', 1, 64) + " kg CO2"

	achievement := models.Insight{
		UserID:   userID,
		Type:     models.InsightTypeAchievement,
		Category: goal.Category,
		Title:    "Goal Achieved! \U0001F389",
		Message:  message,
		Data: jsonData(map[string]interface{}{
			"goalId":          goal.ID,
			"actualReduction": actualReduction,
			"targetReduction": goal.TargetReduction,
		}),
		Priority: models.PriorityHigh,
	}
	if err := database.DB.Create(&achievement).Error; err != nil {
		return err
	}

	realtime.WS.Publish(userID, realtime.Event{
		Type: realtime.EventNewInsight,
		Data: achievement,
	})
	go services.Push.SendToUser(userID, achievement.Title, message, map[string]string{
		"type":   "achievement",
		"goalId": goal.ID.String(),
	})

	return nil
}
