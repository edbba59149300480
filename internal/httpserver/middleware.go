package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
)

const userCtxKey = "fayclick/user"

// authMiddleware resolves the Bearer token to a user and stores it on
// the gin context.
func authMiddleware(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		u, err := auth.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(userCtxKey, u)
		c.Next()
	}
}

// requireActiveSubscription refuses gated routes with 402 and a renewal
// payload when the structure's subscription lapsed.
func requireActiveSubscription(gate featureGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		ok, err := gate.CanSell(c.Request.Context(), u.StructureID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "subscription check failed"})
			return
		}
		if !ok {
			payload := gin.H{
				"error":  "subscription expired",
				"action": "renew",
			}
			if sub, err := gate.Subscription(c.Request.Context(), u.StructureID); err == nil {
				payload["plan"] = sub.Plan
				payload["expiredAt"] = sub.ExpiresAt.UTC().Format(time.RFC3339)
			}
			c.AbortWithStatusJSON(http.StatusPaymentRequired, payload)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
