package router

import (
	"time"

	"github.com/clientbridge-dev/clientbridge/internal/config"
	"github.com/clientbridge-dev/clientbridge/internal/handlers"
	"github.com/clientbridge-dev/clientbridge/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg config.Config) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded files are served straight from disk.
	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
		}

		// Inquiry intake is public, management is admin only.
		api.POST("/inquiries", handlers.SubmitInquiry)
		inquiries := api.Group("/inquiries", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			inquiries.GET("", handlers.ListInquiries)
			inquiries.GET("/:inquiry_id", handlers.GetInquiry)
			inquiries.PATCH("/:inquiry_id", handlers.UpdateInquiry)
			inquiries.DELETE("/:inquiry_id", handlers.DeleteInquiry)
			inquiries.POST("/:inquiry_id/promote", handlers.PromoteInquiry)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			// Milestone and payment endpoints
			projects.POST("/:project_id/milestones", handlers.AddMilestone)
			projects.PATCH("/:project_id/milestones/:milestone_id", handlers.UpdateMilestoneStatus)
			projects.PATCH("/:project_id/payment", handlers.UpdatePayment)

			// Messaging endpoints
			projects.GET("/:project_id/messages", handlers.ListMessages)
			projects.POST("/:project_id/messages", handlers.SendMessage)
			projects.POST("/:project_id/messages/read", handlers.MarkMessagesRead)

			// File exchange endpoints
			projects.POST("/:project_id/files", handlers.UploadFile)
			projects.GET("/:project_id/files", handlers.ListFiles)
			projects.DELETE("/:project_id/files/:file_id", handlers.DeleteFile)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.PATCH("/:notification_id/read", handlers.MarkNotificationRead)
			notifications.POST("/read-all", handlers.MarkAllNotificationsRead)
			notifications.DELETE("/:notification_id", handlers.DeleteNotification)
		}

		// Public portfolio reads, admin-only writes.
		api.GET("/portfolio", handlers.ListPortfolioProjects)
		api.GET("/portfolio/:portfolio_id", handlers.GetPortfolioProject)
		portfolio := api.Group("/portfolio", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			portfolio.POST("", handlers.CreatePortfolioProject)
			portfolio.PATCH("/:portfolio_id", handlers.UpdatePortfolioProject)
			portfolio.DELETE("/:portfolio_id", handlers.DeletePortfolioProject)
		}

		api.GET("/testimonials", handlers.ListTestimonials)
		testimonials := api.Group("/testimonials", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			testimonials.POST("", handlers.CreateTestimonial)
			testimonials.PATCH("/:testimonial_id", handlers.UpdateTestimonial)
			testimonials.DELETE("/:testimonial_id", handlers.DeleteTestimonial)
		}
	}

	return r
}
