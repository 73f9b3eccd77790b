package handlers

import (
	"sort"
	"strconv"
	"time"

	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/emissions"
	"github.com/ecotrack/footprint-api/internal/middleware"
	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/ecotrack/footprint-api/internal/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetActivities returns the user's activities, newest first, with optional
// category and date range filters.
func GetActivities(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	query := database.DB.Where("user_id = ?", userID)

	if category := c.Query("category"); category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if startDate := c.Query("startDate"); startDate != "" {
		if t, err := time.Parse(time.RFC3339, startDate); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if t, err := time.Parse(time.RFC3339, endDate); err == nil {
			query = query.Where("date <= ?", t)
		}
	}

	var activities []models.Activity
	if err := query.Order("date DESC").Limit(limit).Find(&activities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch activities",
		})
	}

	return c.JSON(activities)
}

// CreateActivity logs a new activity. The CO2 emission is computed server
// side from the static factor table; the record is immutable afterwards.
func CreateActivity(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" || req.Category == "" || req.Unit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please provide all required fields",
		})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be greater than 0",
		})
	}
	if !models.ValidCategory(req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category",
		})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	activity := models.Activity{
		UserID:      userID,
		Name:        req.Name,
		Category:    req.Category,
		Amount:      req.Amount,
		Unit:        req.Unit,
		CO2Emission: emissions.Compute(req.Name, req.Amount, req.Category),
		Date:        date,
	}

	if err := database.DB.Create(&activity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create activity",
		})
	}

	realtime.WS.Publish(userID, realtime.Event{
		Type: realtime.EventActivityAdded,
		Data: activity,
	})

	return c.Status(fiber.StatusCreated).JSON(activity)
}

// DeleteActivity removes one of the caller's own activities. Another user's
// activity reads as not found.
func DeleteActivity(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid activity ID",
		})
	}

	var activity models.Activity
	if err := database.DB.Where("id = ? AND user_id = ?", activityID, userID).
		First(&activity).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Activity not found",
		})
	}

	if err := database.DB.Delete(&activity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete activity",
		})
	}

	return c.JSON(fiber.Map{"message": "Activity deleted successfully"})
}

// GetActivityCatalog lists the known activity names and their emission
// factors so clients can offer a picker.
func GetActivityCatalog(c *fiber.Ctx) error {
	names := emissions.KnownActivities()
	sort.Strings(names)
	catalog := make([]fiber.Map, 0, len(names))
	for _, name := range names {
		factor, _ := emissions.Factor(name)
		catalog = append(catalog, fiber.Map{"name": name, "factor": factor})
	}
	return c.JSON(catalog)
}
