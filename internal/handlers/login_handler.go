package handlers

import (
	"crypto/subtle"
	"net/http"

	"go-cookie-shop/internal/auth"
	"go-cookie-shop/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler checks the single staff credential pair from the
// environment. There is no user table: the shop has one operator
// account and the token it issues is the whole session.
type AuthHandler struct {
	Cfg config.AuthConfig
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginRequest
	// 1. Validate Input JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// 2. Check Username
	if subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.Cfg.Username)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 3. Verify Password
	// A bcrypt hash in the env takes precedence over the plain value
	if h.Cfg.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(h.Cfg.PasswordHash), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
	} else if subtle.ConstantTimeCompare([]byte(input.Password), []byte(h.Cfg.Password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 4. Generate JWT Token
	token, err := auth.GenerateToken(h.Cfg.Username, "admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// 5. Success! Return Token and Role
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"role":     "admin",
		"username": h.Cfg.Username,
	})
}
