package routes

import (
	"github.com/ecotrack/footprint-api/internal/handlers"
	"github.com/ecotrack/footprint-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)

	activities := protected.Group("/activities")
	activities.Get("/", handlers.GetActivities)
	activities.Get("/catalog", handlers.GetActivityCatalog)
	activities.Post("/", handlers.CreateActivity)
	activities.Delete("/:id", handlers.DeleteActivity)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", handlers.GetDashboardStats)
	dashboard.Get("/leaderboard", handlers.GetLeaderboard)
	dashboard.Get("/weekly-summary", handlers.GetWeeklySummary)

	goals := protected.Group("/goals")
	goals.Get("/", handlers.GetGoals)
	goals.Post("/", handlers.CreateGoal)
	goals.Patch("/:id", handlers.UpdateGoal)
	goals.Delete("/:id", handlers.DeleteGoal)
	goals.Get("/:id/progress", handlers.GetGoalProgress)

	insights := protected.Group("/insights")
	insights.Get("/", handlers.GetInsights)
	insights.Patch("/:id/read", handlers.MarkInsightRead)
	insights.Post("/analyze", handlers.Analyze)
	insights.Get("/live-tip", handlers.GetLiveTip)

	// Device token for push notifications
	protected.Post("/device-token", handlers.RegisterDeviceToken)

	// WebSocket for real-time per-user updates
	app.Use("/ws", handlers.WebSocketUpgrade())
	app.Get("/ws", websocket.New(handlers.HandleWebSocket))
}
