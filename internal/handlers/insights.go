package handlers

import (
	"strconv"
	"time"

	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/insights"
	"github.com/ecotrack/footprint-api/internal/middleware"
	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/ecotrack/footprint-api/internal/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetInsights returns the user's still-valid insights, newest first.
func GetInsights(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := database.DB.Where("user_id = ? AND valid_until > ?", userID, time.Now())
	if c.Query("unreadOnly") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var results []models.Insight
	if err := query.Order("created_at DESC").Limit(limit).Find(&results).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch insights",
		})
	}

	return c.JSON(results)
}

// MarkInsightRead flips the read flag on one of the caller's insights.
func MarkInsightRead(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	insightID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid insight ID",
		})
	}

	result := database.DB.Model(&models.Insight{}).
		Where("id = ? AND user_id = ?", insightID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update insight",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Insight not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Insight marked as read"})
}

// Analyze refreshes goal progress, runs a fresh emission analysis and
// generates a new tip for the caller.
func Analyze(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if err := insights.UpdateGoalProgress(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update goal progress",
		})
	}

	analysis, err := insights.AnalyzeUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze emissions",
		})
	}

	tip, err := insights.Gen.GenerateTip(userID, analysis)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate tip",
		})
	}

	realtime.WS.Publish(userID, realtime.Event{
		Type: realtime.EventNewInsight,
		Data: fiber.Map{
			"type":     "analysis",
			"tip":      tip,
			"analysis": analysis,
		},
	})

	return c.JSON(fiber.Map{
		"analysis": analysis,
		"tip":      tip,
		"message":  "Analysis completed successfully",
	})
}

// GetLiveTip returns the latest valid tip, generating one on the fly when
// none exists.
func GetLiveTip(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var latestTip models.Insight
	err := database.DB.Where(
		"user_id = ? AND type = ? AND valid_until > ?",
		userID, models.InsightTypeTip, time.Now(),
	).Order("created_at DESC").First(&latestTip).Error
	if err == nil {
		return c.JSON(latestTip)
	}

	analysis, err := insights.AnalyzeUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze emissions",
		})
	}

	tip, err := insights.Gen.GenerateTip(userID, analysis)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate tip",
		})
	}

	return c.JSON(tip)
}
