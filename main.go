package main

import (
	"examportal/config"
	examController "examportal/controllers/exam"
	"examportal/database"
	"examportal/engine"
	adminRoutes "examportal/routers/adminRoutes"
	authRoutes "examportal/routers/authRoutes"
	examRoutes "examportal/routers/examRoutes"
	"examportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Wire the exam engine against the database
	store := engine.NewGormStore(database.Database.Db)
	manager := engine.NewManager(store, engine.NewRandomizerFromClock())
	examController.Init(manager)

	// Auto-submit expired sessions in the background
	scheduler := utils.InitializeSchedulers(manager)
	defer scheduler.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	examRoutes.SetupExamRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
