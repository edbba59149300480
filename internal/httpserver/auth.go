package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
	authsvc "fayclick/internal/service/auth"
)

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "login and password required"})
			return
		}
		u, token, err := auth.Login(c.Request.Context(), req.Login, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresIn": auth.AccessTTLSeconds(),
			"user":      u,
		})
	}
}

func logoutHandler(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			_ = auth.Logout(c.Request.Context(), token)
		}
		c.Status(http.StatusNoContent)
	}
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func changePasswordHandler(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "currentPassword and newPassword required"})
			return
		}
		u := currentUser(c)
		if err := auth.ChangePassword(c.Request.Context(), u.ID, req.CurrentPassword, req.NewPassword); err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) || errors.Is(err, domain.ErrNotFound) {
				respondError(c, err)
			} else {
				// Password policy violations carry their own message.
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func subscriptionHandler(gate featureGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		sub, err := gate.Subscription(c.Request.Context(), u.StructureID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}
