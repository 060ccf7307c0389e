package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medispa-app-server/internal/approval"
	"medispa-app-server/internal/config"
	"medispa-app-server/internal/jobs"
	"medispa-app-server/internal/logger"
	"medispa-app-server/internal/models"
	"medispa-app-server/internal/routes"
	"medispa-app-server/internal/seed"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		logger.Log.Fatal("Error connecting to database", zap.Error(err))
	}

	if cfg.SeedDemoData {
		if err := seed.Run(db, logger.Log); err != nil {
			logger.Log.Fatal("Error seeding demo data", zap.Error(err))
		}
	}

	// Care-instruction approval workflow, shared by handlers and the sweep job
	workflow := approval.NewWorkflow(time.Duration(cfg.RegenDelayMS)*time.Millisecond, logger.Log)

	sweeper := &jobs.NotificationSweeper{DB: db, Workflow: workflow, Log: logger.Log}
	scheduler := sweeper.Start()
	defer scheduler.Stop()

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, workflow)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Log.Info("Server starting", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
