package routes

import (
	"review-portal-api/controllers"
	"review-portal-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/password-reset/request", controllers.RequestPasswordReset)
			public.POST("/password-reset/confirm", controllers.ConfirmPasswordReset)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Review Portal API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Common endpoints (all authenticated users)
			protected.GET("/domains", controllers.GetDomains)
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

			// Teams
			teams := protected.Group("/teams")
			{
				teams.GET("", controllers.GetTeams)
				teams.GET("/:id", controllers.GetTeam)
				teams.POST("", controllers.CreateTeam)
				teams.POST("/:id/join", controllers.JoinTeam)
			}

			// Submitted items (papers and proposals)
			items := protected.Group("/items")
			{
				items.GET("/:kind", controllers.GetItems)
				items.GET("/:kind/:id", controllers.GetItem)
				items.POST("/:kind", controllers.CreateItem)
				items.POST("/:kind/:id/document", controllers.UploadItemDocument)
			}
			protected.GET("/documents/:file_id", controllers.DownloadDocument)

			// Reviewer workflow
			reviews := protected.Group("/reviews")
			reviews.Use(middleware.RequireRole(2, 3)) // 2 = reviewer, 3 = admin
			{
				reviews.GET("/assignments", controllers.GetMyAssignments)
				reviews.PUT("/assignments/:id/status", controllers.UpdateAssignmentStatus)
				reviews.POST("/assignments/:id/decision", controllers.SubmitDecision)
			}

			// Admin: assignment engine surface
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(3)) // 3 = admin
			{
				admin.GET("/reviewers", controllers.ListCandidateReviewers)
				admin.POST("/items/:kind/:id/assignments", controllers.CreateReviewAssignments)
				admin.GET("/items/:kind/:id/status", controllers.GetAdminStatus)
				admin.GET("/items/:kind/:id/outcome", controllers.GetItemOutcome)
				admin.GET("/items/:kind/:id/automatch", controllers.AutoMatchReviewers)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			dashboard.Use(middleware.RequireRole(3))
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}
		}
	}
}
