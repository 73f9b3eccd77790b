package handlers

import (
	"time"

	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/insights"
	"github.com/ecotrack/footprint-api/internal/middleware"
	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/ecotrack/footprint-api/internal/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetGoals returns the user's goals filtered by status and type. Reading
// active goals refreshes their progress snapshots first.
func GetGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	status := c.Query("status", models.GoalStatusActive)
	goalType := c.Query("type", "all")

	// Refresh cached progress before returning active goals
	if status == models.GoalStatusActive {
		if err := insights.UpdateGoalProgress(userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update goal progress",
			})
		}
	}

	query := database.DB.Where("user_id = ?", userID)
	if status != "all" {
		query = query.Where("status = ?", status)
	}
	if goalType != "all" {
		query = query.Where("type = ?", goalType)
	}

	var goals []models.Goal
	if err := query.Order("created_at DESC").Find(&goals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goals",
		})
	}

	return c.JSON(goals)
}

// CreateGoal creates a reduction goal. At most one active, unexpired goal
// per type is allowed per user.
func CreateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Type == "" || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please provide all required fields",
		})
	}
	if req.Type != models.GoalTypeWeekly && req.Type != models.GoalTypeMonthly {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Goal type must be weekly or monthly",
		})
	}
	if req.TargetReduction <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target reduction must be greater than 0",
		})
	}
	if !models.ValidCategory(req.Category) && req.Category != models.CategoryOverall {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category",
		})
	}

	// One active, unexpired goal per type
	var existingGoal models.Goal
	if err := database.DB.Where(
		"user_id = ? AND type = ? AND status = ? AND end_date > ?",
		userID, req.Type, models.GoalStatusActive, time.Now(),
	).First(&existingGoal).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You already have an active " + req.Type + " goal",
		})
	}

	startDate, endDate := models.GoalWindow(req.Type, time.Now())

	goal := models.Goal{
		UserID:          userID,
		Type:            req.Type,
		TargetReduction: req.TargetReduction,
		Category:        req.Category,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          models.GoalStatusActive,
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	realtime.WS.Publish(userID, realtime.Event{
		Type: realtime.EventGoalCreated,
		Data: goal,
	})

	return c.Status(fiber.StatusCreated).JSON(goal)
}

// UpdateGoal updates a goal's target reduction or status.
func UpdateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	var req models.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.TargetReduction != nil {
		if *req.TargetReduction <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Target reduction must be greater than 0",
			})
		}
		goal.TargetReduction = *req.TargetReduction
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}

	if err := database.DB.Save(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update goal",
		})
	}

	realtime.WS.Publish(userID, realtime.Event{
		Type: realtime.EventGoalUpdated,
		Data: goal,
	})

	return c.JSON(goal)
}

// DeleteGoal removes one of the caller's goals.
func DeleteGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	if err := database.DB.Delete(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	realtime.WS.Publish(userID, realtime.Event{
		Type: realtime.EventGoalDeleted,
		Data: fiber.Map{"goalId": goalID},
	})

	return c.JSON(fiber.Map{"message": "Goal deleted successfully"})
}

// GetGoalProgress returns a goal with the activities in its window, a
// per-day emission map and the capped progress percentage.
func GetGoalProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	query := database.DB.Where(
		"user_id = ? AND date >= ? AND date <= ?",
		userID, goal.StartDate, time.Now(),
	)
	if goal.Category != models.CategoryOverall {
		query = query.Where("category = ?", goal.Category)
	}

	var activities []models.Activity
	if err := query.Order("date DESC").Find(&activities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goal progress",
		})
	}

	dailyProgress := make(map[string]float64)
	for _, a := range activities {
		day := a.Date.Format("2006-01-02")
		dailyProgress[day] += a.CO2Emission
	}

	return c.JSON(fiber.Map{
		"goal":               goal,
		"activities":         activities,
		"dailyProgress":      dailyProgress,
		"progressPercentage": insights.ProgressPercentage(goal.CurrentProgress, goal.TargetReduction),
	})
}
