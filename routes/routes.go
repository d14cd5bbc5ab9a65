package routes

import (
	"github.com/feed-pulse/api-go/controllers"
	"github.com/feed-pulse/api-go/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	reactionController := controllers.NewReactionController(db)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/signup", authController.Signup)
		public.POST("/login", authController.Login)
		public.POST("/token/refresh", authController.RefreshToken)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)
		protected.PATCH("/profile", authController.UpdateProfile)

		// Setup other routes within the protected group
		SetupPostRoutes(protected, postController)
		SetupReactionRoutes(protected, reactionController)
		SetupUploadRoutes(protected, uploadController)
	}
}
