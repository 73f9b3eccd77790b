package main

import (
	"log"
	"time"

	"github.com/ecotrack/footprint-api/internal/config"
	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/insights"
	"github.com/ecotrack/footprint-api/internal/routes"
	"github.com/ecotrack/footprint-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := services.InitPush(cfg.FCMServiceAccount); err != nil {
		log.Printf("Failed to initialize push notifications: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "footprint-api",
	})

	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))

	routes.Setup(app)

	// Weekly analysis job (Sundays 9 AM by default)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.WeeklyCronSpec, func() {
		log.Println("Running weekly analysis...")
		insights.Gen.RunWeeklyBatch()
	}); err != nil {
		log.Fatalf("Failed to schedule weekly analysis: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("Server running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
