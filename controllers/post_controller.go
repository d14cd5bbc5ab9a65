package controllers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/feed-pulse/api-go/models"
	"github.com/feed-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostController struct {
	DB *gorm.DB
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{DB: db}
}

const maxDescriptionLength = 500

type CreatePostRequest struct {
	Description string `json:"description" binding:"required"`
	Image       string `json:"image"`
}

type UpdatePostRequest struct {
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func validateDescription(description string) (string, bool) {
	if strings.TrimSpace(description) == "" {
		return "Description cannot be empty.", false
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return "Description cannot exceed 500 characters.", false
	}
	return "", true
}

// postResponse renders a post with its derived counts and the caller's own
// reaction. Counts are recomputed from reaction rows on every call.
func (pc *PostController) postResponse(post *models.Post, callerID uint) (gin.H, error) {
	likes, err := likesCount(pc.DB, post.ID)
	if err != nil {
		return nil, err
	}
	dislikes, err := dislikesCount(pc.DB, post.ID)
	if err != nil {
		return nil, err
	}
	reaction, err := userReaction(pc.DB, callerID, post.ID)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"id":             post.ID,
		"user":           userResponse(&post.User),
		"description":    post.Description,
		"image":          post.Image,
		"created_at":     post.CreatedAt,
		"updated_at":     post.UpdatedAt,
		"likes_count":    likes,
		"dislikes_count": dislikes,
		"user_reaction":  reaction,
	}, nil
}

// ListPosts godoc
// @Summary List all posts
// @Description Returns every post system-wide, newest first, with derived reaction counts
// @Tags posts
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var posts []models.Post
	if err := pc.DB.Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	response := make([]gin.H, 0, len(posts))
	for i := range posts {
		rendered, err := pc.postResponse(&posts[i], user.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
			return
		}
		response = append(response, rendered)
	}

	c.JSON(http.StatusOK, response)
}

// CreatePost godoc
// @Summary Create a new post
// @Description Creates a post owned by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} map[string]interface{}
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg, ok := validateDescription(req.Description); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	post := models.Post{
		UserID:      user.UserID,
		Description: req.Description,
		Image:       req.Image,
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	if err := pc.DB.Preload("User").First(&post, post.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	rendered, err := pc.postResponse(&post, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"post":    rendered,
		"message": "Post created successfully",
	})
}

// findOwnedPost loads a post only when the caller owns it. Ownership lives in
// the query itself, so someone else's post is indistinguishable from a
// missing one.
func (pc *PostController) findOwnedPost(postID string, callerID uint) (*models.Post, error) {
	var post models.Post
	err := pc.DB.Preload("User").
		Where("id = ? AND user_id = ?", postID, callerID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostDetail godoc
// @Summary Get one of the caller's posts
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [get]
func (pc *PostController) GetPostDetail(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	post, err := pc.findOwnedPost(c.Param("id"), user.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	rendered, err := pc.postResponse(post, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}

	c.JSON(http.StatusOK, rendered)
}

// UpdatePost godoc
// @Summary Update one of the caller's posts
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body UpdatePostRequest true "Post update request"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [patch]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.findOwnedPost(c.Param("id"), user.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	updates := make(map[string]interface{})

	if req.Description != nil {
		if msg, ok := validateDescription(*req.Description); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}

	if len(updates) > 0 {
		if err := pc.DB.Model(post).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
	}

	rendered, err := pc.postResponse(post, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":    rendered,
		"message": "Post updated successfully",
	})
}

// DeletePost godoc
// @Summary Delete one of the caller's posts
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	post, err := pc.findOwnedPost(c.Param("id"), user.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	tx := pc.DB.Begin()

	// Reactions go with the post.
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Reaction{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if err := tx.Delete(post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
