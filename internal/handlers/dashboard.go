package handlers

import (
	"strconv"
	"time"

	"github.com/ecotrack/footprint-api/internal/analytics"
	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/middleware"
	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetDashboardStats returns the user's emission totals, category breakdown
// and weekly streak together with community-wide averages.
func GetDashboardStats(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	now := time.Now()

	var userActivities []models.Activity
	if err := database.DB.Where("user_id = ?", userID).Find(&userActivities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}

	var allActivities []models.Activity
	if err := database.DB.Find(&allActivities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}

	weekly := analytics.WeeklySummary(userActivities, 0)
	community := analytics.Community(allActivities)

	return c.JSON(fiber.Map{
		"userStats": fiber.Map{
			"totalEmissions":    analytics.Total(userActivities),
			"weeklyEmissions":   analytics.SumSince(userActivities, analytics.StartOfWeek(now)),
			"monthlyEmissions":  analytics.SumSince(userActivities, analytics.StartOfMonth(now)),
			"categoryBreakdown": analytics.CategoryBreakdown(userActivities),
			"weeklyStreak":      analytics.Streak(weekly, now),
		},
		"communityStats": fiber.Map{
			"averageEmissions": community.AverageEmissions,
			"totalUsers":       community.TotalUsers,
		},
	})
}

// GetLeaderboard ranks users by total emissions within a period, lowest
// emitter first.
func GetLeaderboard(c *fiber.Ctx) error {
	period := c.Query("period", "month")
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := database.DB.Model(&models.Activity{})
	if start, bounded := analytics.PeriodStart(period, time.Now()); bounded {
		query = query.Where("date >= ?", start)
	}

	var activities []models.Activity
	if err := query.Find(&activities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch leaderboard",
		})
	}

	var users []models.User
	if err := database.DB.Select("id, username").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch leaderboard",
		})
	}
	usernames := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	return c.JSON(analytics.Leaderboard(activities, usernames, limit))
}

// GetWeeklySummary returns per-week emission aggregates for the user, most
// recent week first.
func GetWeeklySummary(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	weeks, _ := strconv.Atoi(c.Query("weeks", "8"))
	if weeks < 1 || weeks > 52 {
		weeks = 8
	}

	var activities []models.Activity
	if err := database.DB.Where("user_id = ?", userID).Find(&activities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch weekly summary",
		})
	}

	return c.JSON(analytics.WeeklySummary(activities, weeks))
}
