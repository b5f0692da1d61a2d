package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/aylin/campuswell/internal/app/controllers"
	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/middleware"
	"github.com/aylin/campuswell/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	onboardingController *controllers.OnboardingController,
	screeningController *controllers.ScreeningController,
	forumController *controllers.ForumController,
	moodController *controllers.MoodController,
	appointmentController *controllers.AppointmentController,
	resourceController *controllers.ResourceController,
	adminController *controllers.AdminController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Resource library reads are public so the crisis hotline material is
	// reachable without an account.
	resources := v1.Group("/resources")
	{
		resources.GET("", resourceController.List)
		resources.GET("/:id", resourceController.Get)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Profile)

		// Onboarding endpoints are reachable before the account is active;
		// that is the whole point of the flow.
		onboarding := authenticated.Group("/onboarding")
		{
			onboarding.GET("/status", onboardingController.Status)
			onboarding.POST("/verify", onboardingController.VerifyIdentity)
			onboarding.POST("/role", onboardingController.SelectRole)
			onboarding.POST("/profile", onboardingController.CompleteProfile)
			onboarding.POST("/documents", onboardingController.SubmitDocuments)
		}

		// Everything below requires completed onboarding.
		active := authenticated.Group("")
		active.Use(authMiddleware.ActiveRequired())
		{
			screenings := active.Group("/screenings")
			{
				screenings.POST("", screeningController.Submit)
				screenings.GET("", screeningController.History)
				screenings.GET("/latest", screeningController.Latest)
			}

			posts := active.Group("/posts")
			{
				posts.GET("", forumController.ListPosts)
				posts.POST("", forumController.CreatePost)
				posts.GET("/:id", forumController.GetPost)
				posts.DELETE("/:id", forumController.DeletePost)
				posts.POST("/:id/replies", forumController.CreateReply)
			}

			moods := active.Group("/moods")
			{
				moods.POST("", moodController.CreateEntry)
				moods.GET("", moodController.History)
				moods.GET("/actions", moodController.WellnessActions)
			}

			appointments := active.Group("/appointments")
			{
				appointments.POST("", appointmentController.Create)
				appointments.GET("", appointmentController.List)
				appointments.GET("/counselors", appointmentController.Counselors)
				appointments.PATCH("/:id", appointmentController.Update)
			}

			// Real-time endpoint: AI counselor chat for everyone, risk
			// alerts for admins in the same connection.
			active.GET("/ws", wsHandler.HandleConnection)

			// --- Admin routes ---
			admin := active.Group("/admin")
			admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				admin.GET("/users", adminController.ListUsers)
				admin.PATCH("/users/:id", adminController.UpdateUser)
				admin.POST("/onboarding/:id/review", onboardingController.Review)
				admin.GET("/stats", adminController.Stats)
				admin.GET("/insights/daily", adminController.DailyInsight)
				admin.POST("/resources", resourceController.Create)
				admin.DELETE("/resources/:id", resourceController.Delete)
			}
		}
	}
}
