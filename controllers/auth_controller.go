package controllers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/feed-pulse/api-go/models"
	"github.com/feed-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

const (
	accessTokenTTL  = time.Hour * 24 * 7
	refreshTokenTTL = time.Hour * 24 * 30
)

func userResponse(user *models.User) gin.H {
	var dateOfBirth interface{}
	if user.DateOfBirth != nil {
		dateOfBirth = user.DateOfBirth.Format("2006-01-02")
	}
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"date_of_birth":   dateOfBirth,
		"profile_picture": user.ProfilePicture,
	}
}

func signAccessToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// signRefreshToken includes a jti claim so two refresh tokens signed for the
// same user within the same second are still distinct strings. Rotation
// depends on that: the replacement must never equal the token it replaces.
func signRefreshToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(refreshTokenTTL).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// issueTokens signs a fresh access/refresh pair and persists the refresh
// token so it can be rotated or revoked later.
func (ac *AuthController) issueTokens(user *models.User) (string, string, error) {
	accessToken, err := signAccessToken(user.ID)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := signRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}

	if err := ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(refreshTokenTTL),
	}).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func parseDateOfBirth(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func (ac *AuthController) Signup(c *gin.Context) {
	var input struct {
		Email          string `json:"email" binding:"required,email"`
		FullName       string `json:"full_name" binding:"required"`
		Password       string `json:"password" binding:"required,min=6"`
		RePassword     string `json:"re_password" binding:"required"`
		DateOfBirth    string `json:"date_of_birth"`
		ProfilePicture string `json:"profile_picture"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Password != input.RePassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password fields didn't match."})
		return
	}

	// Emails are stored lowercase so logins are case-insensitive.
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := ac.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A user with this email already exists."})
		return
	}

	dateOfBirth, ok := parseDateOfBirth(input.DateOfBirth)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date of birth must be in YYYY-MM-DD format."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	user := models.User{
		Email:          email,
		FullName:       input.FullName,
		Password:       string(hashedPassword),
		DateOfBirth:    dateOfBirth,
		ProfilePicture: input.ProfilePicture,
		IsActive:       true,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		// Unique index on email catches the race with a concurrent signup.
		c.JSON(http.StatusBadRequest, gin.H{"error": "A user with this email already exists."})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    userResponse(&user),
		"message": "User registered successfully",
		"tokens": gin.H{
			"access":  accessToken,
			"refresh": refreshToken,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide both email and password"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	if err := ac.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    userResponse(&user),
		"message": "Login successful",
		"tokens": gin.H{
			"access":  accessToken,
			"refresh": refreshToken,
		},
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ?", input.Refresh).First(&refreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	if time.Now().After(refreshToken.ExpirationDate) {
		ac.DB.Delete(&refreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	accessToken, err := signAccessToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate access token"})
		return
	}

	newRefreshToken, err := signRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate refresh token"})
		return
	}

	// Rotate the stored token in place.
	refreshToken.Token = newRefreshToken
	refreshToken.ExpirationDate = time.Now().Add(refreshTokenTTL)
	ac.DB.Save(&refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"tokens": gin.H{
			"access":  accessToken,
			"refresh": newRefreshToken,
		},
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Deleting an already-missing token still counts as logged out.
	ac.DB.Where("token = ?", input.Refresh).Delete(&models.RefreshToken{})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, userResponse(&dbUser))
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	// Email is deliberately absent: it is the login identity and immutable.
	var input struct {
		FullName       *string `json:"full_name"`
		DateOfBirth    *string `json:"date_of_birth"`
		ProfilePicture *string `json:"profile_picture"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := make(map[string]interface{})

	if input.FullName != nil {
		if strings.TrimSpace(*input.FullName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Full name cannot be empty."})
			return
		}
		updates["full_name"] = *input.FullName
	}
	if input.DateOfBirth != nil {
		dateOfBirth, ok := parseDateOfBirth(*input.DateOfBirth)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date of birth must be in YYYY-MM-DD format."})
			return
		}
		updates["date_of_birth"] = dateOfBirth
	}
	if input.ProfilePicture != nil {
		updates["profile_picture"] = *input.ProfilePicture
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(&dbUser).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    userResponse(&dbUser),
		"message": "Profile updated successfully",
	})
}
