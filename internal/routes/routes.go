package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medispa-app-server/internal/approval"
	"medispa-app-server/internal/config"
	"medispa-app-server/internal/handlers"
	"medispa-app-server/internal/middleware"
	"medispa-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, workflow *approval.Workflow) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, workflow)
	calendarHandler := handlers.NewCalendarHandler(db)
	approvalHandler := handlers.NewApprovalHandler(db, workflow)
	chartHandler := handlers.NewChartHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Provider listing feeds the day view's provider columns
			userRoutes.GET("/providers", userHandler.GetProviders)

			// Patient picker for the booking dialog
			userRoutes.GET("/patients", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), userHandler.GetPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Staff book appointments; this is the commit end of drag-to-create
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), appointmentHandler.CreateAppointment)

			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			// Drag-to-move lands here
			appointmentRoutes.PATCH("/:id/move", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), appointmentHandler.MoveAppointment)

			appointmentRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), appointmentHandler.DeleteAppointment)
		}

		// Scheduler layout routes
		calendarRoutes := private.Group("/calendar")
		{
			calendarRoutes.GET("/layout", calendarHandler.GetLayout)
			calendarRoutes.GET("/provider-columns", calendarHandler.GetProviderColumns)
		}

		// Care-instruction approval routes (staff only)
		approvalRoutes := private.Group("/approvals")
		approvalRoutes.Use(middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin))
		{
			approvalRoutes.GET("", approvalHandler.GetPendingApprovals)
			approvalRoutes.POST("/:id/approve", approvalHandler.Approve)
			approvalRoutes.POST("/:id/decline", approvalHandler.Decline)
			approvalRoutes.POST("/:id/cycle-variant", approvalHandler.CycleVariant)
		}

		// Patient chart routes
		chartRoutes := private.Group("/charts")
		{
			chartRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleProvider), chartHandler.CreateChartNote)
			chartRoutes.GET("/patient/:patientId", chartHandler.GetChartNotesForPatient)
			chartRoutes.GET("/:id", chartHandler.GetChartNoteByID)
			chartRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), chartHandler.UpdateChartNote)
			chartRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleProvider, models.RoleAdmin), chartHandler.DeleteChartNote)

			attachmentRoutes := chartRoutes.Group("/:id/attachments")
			attachmentRoutes.Use(middleware.RoleAuthMiddleware(models.RoleProvider))
			{
				attachmentRoutes.POST("", chartHandler.UploadChartNoteAttachment)
			}

			// Attachment ids are globally unique, so fetching sits outside the per-note group
			private.GET("/charts/attachments/:attachmentId", chartHandler.GetChartNoteAttachment)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
