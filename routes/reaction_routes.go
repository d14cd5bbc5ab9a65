package routes

import (
	"github.com/feed-pulse/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupReactionRoutes(protected *gin.RouterGroup, reactionController *controllers.ReactionController) {
	posts := protected.Group("/posts")
	{
		posts.POST("/:id/like", reactionController.LikePost)
		posts.POST("/:id/dislike", reactionController.DislikePost)
	}
}
