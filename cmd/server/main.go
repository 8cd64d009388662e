package main

import (
	"fmt"
	"log"
	"os"

	"huddle/internal/auth"
	"huddle/internal/database"
	"huddle/internal/handlers"
	"huddle/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// This is our main function - the entry point of our application
func main() {
	// Load .env in development; production sets real environment variables
	if gin.Mode() != gin.ReleaseMode {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Maps client is optional; meetings fall back to the typed location
	if err := services.InitMapsClient(); err != nil {
		log.Printf("Warning: Maps client not available: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	// CORS for the web client
	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Reminder confirmation routes (the token itself is the authorization)
	router.GET("/reminders/:token", handlers.PreviewReminder)
	router.POST("/reminders/:token/confirm", handlers.ConfirmReminder)

	// Public group routes
	router.GET("/public/groups/:group_id", handlers.GetGroup)
	router.GET("/public/groups/:group_id/calendar.ics", handlers.GroupCalendar)

	// Protected routes (auth required)
	protected := router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/groups", handlers.CreateGroup)
		protected.GET("/groups/:group_id", handlers.GetGroup)
		protected.GET("/groups/:group_id/meetings", handlers.GetGroupMeetings)

		protected.POST("/meetings", handlers.CreateMeeting)
		protected.GET("/meetings/:meeting_id", handlers.GetMeeting)
		protected.POST("/meetings/:meeting_id/skip", handlers.SkipMeeting)
		protected.POST("/meetings/:meeting_id/rsvp", handlers.RSVPMeeting)

		protected.POST("/series/:series_id/rsvp", handlers.RSVPSeries)
		protected.DELETE("/series/:series_id", handlers.DeleteSeries)
	}

	// Start background jobs
	services.NewReminderWorker().Start()

	maintenance := services.NewMaintenanceJob()
	if err := maintenance.Start(); err != nil {
		log.Fatal("Failed to start maintenance job:", err)
	}
	defer maintenance.Stop()

	// Start the server
	fmt.Println("Server starting on port 8080...")
	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
