package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/makona/awards-backend/internal/app/controllers"
	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	categoryController *controllers.CategoryController,
	candidatureController *controllers.CandidatureController,
	voteController *controllers.VoteController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public category and standings routes ---
	categories := v1.Group("/categories")
	categories.Use(authMiddleware.OptionalJWTAuth())
	{
		categories.GET("", categoryController.ListCategories)
		categories.GET("/:id", categoryController.GetCategory)
		categories.GET("/:id/standings", categoryController.GetStandings)
		categories.GET("/slug/:slug", categoryController.GetCategoryBySlug)
		categories.GET("/slug/:slug/standings", categoryController.GetStandingsBySlug)
	}

	classes := v1.Group("/category-classes")
	classes.Use(authMiddleware.OptionalJWTAuth())
	{
		classes.GET("", categoryController.ListCategoryClasses)
	}

	// --- Candidature routes ---
	candidatures := v1.Group("/candidatures")
	{
		// Public views. The detail handler widens visibility for owners
		// and admins, so the token is parsed when present.
		candidatures.GET("", candidatureController.ListPublished)
		candidatures.GET("/:id", authMiddleware.OptionalJWTAuth(), candidatureController.GetCandidature)

		authed := candidatures.Group("")
		authed.Use(authMiddleware.JWTAuth())
		{
			authed.GET("/me", candidatureController.ListMine)
			authed.DELETE("/:id", candidatureController.Delete)

			// Submission and modification are candidate operations.
			candidateOnly := authed.Group("")
			candidateOnly.Use(authMiddleware.RoleRequired(string(models.RoleCandidate)))
			{
				candidateOnly.POST("", candidatureController.Submit)
				candidateOnly.PUT("/:id", candidatureController.Modify)
			}

			// Voting is open to voters and admins.
			voterOnly := authed.Group("")
			voterOnly.Use(authMiddleware.RoleRequired(string(models.RoleVoter), string(models.RoleAdmin)))
			{
				voterOnly.POST("/:id/votes", voteController.Cast)
				voterOnly.GET("/:id/votes/me", voteController.HasVoted)
			}
		}
	}

	// --- Authenticated profile route ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		adminCategories := admin.Group("/categories")
		{
			adminCategories.POST("", categoryController.CreateCategory)
			adminCategories.PUT("/:id", categoryController.UpdateCategory)
			adminCategories.PATCH("/:id/active", categoryController.SetCategoryActive)
			adminCategories.DELETE("/:id", categoryController.DeleteCategory)
			adminCategories.GET("/:id/stats", categoryController.GetCategoryStats)
		}

		admin.POST("/category-classes", categoryController.CreateCategoryClass)

		adminCandidatures := admin.Group("/candidatures")
		{
			adminCandidatures.GET("", candidatureController.ListAll)
			adminCandidatures.GET("/stats", candidatureController.GetStats)
			adminCandidatures.POST("/:id/approve", candidatureController.Approve)
			adminCandidatures.POST("/:id/reject", candidatureController.Reject)
			adminCandidatures.POST("/:id/publish", candidatureController.SetPublished)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
