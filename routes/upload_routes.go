package routes

import (
	"github.com/feed-pulse/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/profile-picture", uploadController.GetProfilePictureUploadURL)
		uploads.POST("/post-image", uploadController.GetPostImageUploadURL)
	}
}
