package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"lms/config"
	"lms/database"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	instructorRoutes "lms/routers/instructorRoutes"
	interactionRoutes "lms/routers/interactionRoutes"
	learningRoutes "lms/routers/learningRoutes"
	paymentRoutes "lms/routers/paymentRoutes"
	systemRoutes "lms/routers/systemRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	instructorRoutes.SetupInstructorRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	learningRoutes.SetupLearningRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	interactionRoutes.SetupInteractionRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	systemRoutes.SetupSystemRoutes(app)

	// Expire stale pending transactions nightly
	utils.InitializeTransactionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
