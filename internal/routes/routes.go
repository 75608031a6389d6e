package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-visit-server/internal/config"
	"hospital-visit-server/internal/handlers"
	"hospital-visit-server/internal/middleware"
	"hospital-visit-server/internal/models"
	"hospital-visit-server/internal/scheduling"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, scheduler *scheduling.Service, cfg *config.Config) {
	// Initialize handlers
	appointmentHandler := handlers.NewAppointmentHandler(db, scheduler)
	doctorHandler := handlers.NewDoctorHandler(db, scheduler)
	hospitalHandler := handlers.NewHospitalHandler(db)

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		// Directory routes - accessible by all authenticated users
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.GET("/:id/availability", doctorHandler.GetDoctorAvailability)
			doctorRoutes.GET("/:id/slots", doctorHandler.GetDoctorSlots)
		}

		hospitalRoutes := private.Group("/hospitals")
		{
			hospitalRoutes.GET("", hospitalHandler.GetHospitals)
			hospitalRoutes.GET("/:id", hospitalHandler.GetHospitalByID)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin, models.RoleOrgAdmin), appointmentHandler.CreateAppointment)

			// All authenticated users can get their own appointments
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)

			// Queue management (doctor owning the queue, org admin, admin - ownership in service)
			queueRoles := middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin, models.RoleOrgAdmin)
			appointmentRoutes.GET("/queue", queueRoles, appointmentHandler.GetQueue)
			appointmentRoutes.PUT("/queue/reorder", queueRoles, appointmentHandler.ReorderQueue)
			appointmentRoutes.POST("/queue/reconcile", queueRoles, appointmentHandler.ReconcileQueue)

			// Specific appointment access (ownership checked in service)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PATCH("/:id/phase", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), appointmentHandler.UpdateSessionPhase)
			appointmentRoutes.PATCH("/:id/move-up", queueRoles, appointmentHandler.MoveUp)
			appointmentRoutes.PATCH("/:id/move-down", queueRoles, appointmentHandler.MoveDown)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
