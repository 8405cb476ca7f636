package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/worklog-api/internal/middleware"
	"github.com/yukikurage/worklog-api/internal/models"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth    *AuthHandler
	Tasks   *TaskHandler
	Hours   *HourLogHandler
	Reports *ReportHandler
	Users   *UserHandler
}

// RegisterRoutes mounts the health check and the /api routes on r.
// requireAuth guards every route except registration, login and logout.
func RegisterRoutes(r *gin.Engine, h Handlers, requireAuth gin.HandlerFunc) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Worklog API is running",
		})
	})

	requireID := middleware.RequireIDParam()
	requireElevated := middleware.RequireRole(models.RoleAdmin, models.RoleManager)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", requireAuth, h.Auth.GetCurrentUser)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", h.Tasks.ListTasks)
			tasks.POST("", h.Tasks.CreateTask)
			tasks.GET("/:id", requireID, h.Tasks.GetTask)
			tasks.PUT("/:id", requireID, h.Tasks.UpdateTask)
			tasks.DELETE("/:id", requireID, h.Tasks.DeleteTask)
		}

		hours := api.Group("/hours")
		hours.Use(requireAuth)
		{
			hours.GET("", h.Hours.ListHourLogs)
			hours.POST("", h.Hours.CreateHourLog)
			hours.GET("/range", h.Hours.ListHourLogsInRange)
			hours.GET("/:id", requireID, h.Hours.GetHourLog)
			hours.PUT("/:id", requireID, h.Hours.UpdateHourLog)
			hours.DELETE("/:id", requireID, h.Hours.DeleteHourLog)
		}

		reports := api.Group("/reports")
		reports.Use(requireAuth)
		{
			reports.GET("", h.Reports.ListReports)
			reports.POST("", h.Reports.CreateReport)
			reports.POST("/draft", h.Reports.DraftReport)
			reports.GET("/:id", requireID, h.Reports.GetReport)
			reports.PUT("/:id", requireID, h.Reports.UpdateReport)
			reports.DELETE("/:id", requireID, h.Reports.DeleteReport)
			reports.PUT("/:id/submit", requireID, h.Reports.SubmitReport)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", requireElevated, h.Users.ListUsers)
			users.GET("/:id", requireID, h.Users.GetUser)
			users.PUT("/:id", requireID, h.Users.UpdateUser)
			users.DELETE("/:id", requireElevated, requireID, h.Users.DeleteUser)
		}
	}
}
