package controllers

import (
	"errors"
	"net/http"

	"github.com/feed-pulse/api-go/models"
	"github.com/feed-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReactionController struct {
	DB *gorm.DB
}

func NewReactionController(db *gorm.DB) *ReactionController {
	return &ReactionController{DB: db}
}

func likesCount(db *gorm.DB, postID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Reaction{}).Where("post_id = ? AND is_like = ?", postID, true).Count(&count).Error
	return count, err
}

func dislikesCount(db *gorm.DB, postID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Reaction{}).Where("post_id = ? AND is_like = ?", postID, false).Count(&count).Error
	return count, err
}

// userReaction returns "like", "dislike", or nil when the user has no
// reaction on the post.
func userReaction(db *gorm.DB, userID, postID uint) (*string, error) {
	var reaction models.Reaction
	err := db.Where("post_id = ? AND user_id = ?", postID, userID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	kind := "dislike"
	if reaction.IsLike {
		kind = "like"
	}
	return &kind, nil
}

func reactionMessage(isLike bool, created, removed bool) string {
	switch {
	case created && isLike:
		return "Post liked"
	case created:
		return "Post disliked"
	case removed && isLike:
		return "Like removed"
	case removed:
		return "Dislike removed"
	case isLike:
		return "Changed to like"
	default:
		return "Changed to dislike"
	}
}

// applyReaction runs the reaction state machine for one (user, post) pair:
// no row creates one, a row of the same polarity is deleted (toggle-off),
// and a row of the opposite polarity is flipped in place. The unique index
// on (user_id, post_id) keeps concurrent first-time reactions down to a
// single surviving row; the loser re-reads and falls into the flip/delete
// branches.
func applyReaction(db *gorm.DB, userID, postID uint, isLike bool) (string, error) {
	var existing models.Reaction
	err := db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		reaction := models.Reaction{
			UserID: userID,
			PostID: postID,
			IsLike: isLike,
		}

		if createErr := db.Create(&reaction).Error; createErr == nil {
			return reactionMessage(isLike, true, false), nil
		}

		// Lost the race against a concurrent first reaction; the row that
		// won is now the existing state.
		if err := db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	if existing.IsLike == isLike {
		if err := db.Delete(&existing).Error; err != nil {
			return "", err
		}
		return reactionMessage(isLike, false, true), nil
	}

	if err := db.Model(&existing).Update("is_like", isLike).Error; err != nil {
		return "", err
	}
	return reactionMessage(isLike, false, false), nil
}

func (rc *ReactionController) react(c *gin.Context, isLike bool) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	postID := c.Param("id")

	var post models.Post
	if err := rc.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	message, err := applyReaction(rc.DB, user.UserID, post.ID, isLike)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply reaction"})
		return
	}

	likes, err := likesCount(rc.DB, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply reaction"})
		return
	}
	dislikes, err := dislikesCount(rc.DB, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply reaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        message,
		"likes_count":    likes,
		"dislikes_count": dislikes,
	})
}

// LikePost godoc
// @Summary Like a post
// @Description Toggles the caller's like on a post: creates it, removes it when repeated, or flips an existing dislike
// @Tags reactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/like [post]
func (rc *ReactionController) LikePost(c *gin.Context) {
	rc.react(c, true)
}

// DislikePost godoc
// @Summary Dislike a post
// @Description Toggles the caller's dislike on a post: creates it, removes it when repeated, or flips an existing like
// @Tags reactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/dislike [post]
func (rc *ReactionController) DislikePost(c *gin.Context) {
	rc.react(c, false)
}
