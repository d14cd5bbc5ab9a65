package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/feed-pulse/api-go/middleware"
	"github.com/feed-pulse/api-go/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.Post{}, &models.Reaction{})
	require.NoError(t, err)

	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	authController := NewAuthController(db)
	postController := NewPostController(db)
	reactionController := NewReactionController(db)

	r := gin.New()

	public := r.Group("/api")
	{
		public.POST("/signup", authController.Signup)
		public.POST("/login", authController.Login)
		public.POST("/token/refresh", authController.RefreshToken)
	}

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)
		protected.PATCH("/profile", authController.UpdateProfile)

		protected.GET("/posts", postController.ListPosts)
		protected.POST("/posts", postController.CreatePost)
		protected.GET("/posts/:id", postController.GetPostDetail)
		protected.PATCH("/posts/:id", postController.UpdatePost)
		protected.DELETE("/posts/:id", postController.DeletePost)

		protected.POST("/posts/:id/like", reactionController.LikePost)
		protected.POST("/posts/:id/dislike", reactionController.DislikePost)
	}

	return r
}

func performRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// signupTestUser registers a user over the API and returns their access token.
func signupTestUser(t *testing.T, r *gin.Engine, email string) string {
	w := performRequest(r, http.MethodPost, "/api/signup", "", gin.H{
		"email":       email,
		"full_name":   "Test User",
		"password":    "secret123",
		"re_password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	tokens, ok := body["tokens"].(map[string]interface{})
	require.True(t, ok)
	access, ok := tokens["access"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, access)
	return access
}

// createTestPost inserts a post row directly, bypassing the HTTP layer.
func createTestPost(t *testing.T, db *gorm.DB, userID uint, description string) *models.Post {
	post := &models.Post{
		UserID:      userID,
		Description: description,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func findUserByEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	return &user
}
