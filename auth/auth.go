package auth

import (
	"net/http"

	"baristasalary/logger"
	"baristasalary/model"
	"baristasalary/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	db     *gorm.DB
	tokens *utils.TokenManager
}

func NewHandler(db *gorm.DB, tokens *utils.TokenManager) *Handler {
	return &Handler{db: db, tokens: tokens}
}

func (h *Handler) Login(c *gin.Context) {
	type Request struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Username and password are required"})
		return
	}

	var user model.User
	if err := h.db.WithContext(c.Request.Context()).Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid login credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.FromContext(c.Request.Context()).Warn().Str("username", req.Username).Msg("failed login")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid login credentials"})
		return
	}

	access, refresh, err := h.tokens.GenerateTokens(string(user.Role), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  access,
		"refresh_token": refresh,
		"role":          user.Role,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	type Request struct {
		RefreshToken string `form:"refresh_token" json:"refresh_token" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Refresh token is required"})
		return
	}

	access, refresh, err := h.tokens.RefreshTokens(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  access,
		"refresh_token": refresh,
	})
}
