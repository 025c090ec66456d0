package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"memorial-backend/pkg/jwt"
)

// Context keys set by the auth middleware. Handlers read the caller's
// verified email through these; an absent email means an anonymous caller.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxUserName  = "user_name"
)

// RequireAuth rejects requests without a valid Bearer token.
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, manager)
		if !ok {
			c.JSON(401, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid token"},
			})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller identity when a valid token is present
// and lets anonymous requests through. Used on endpoints open to the
// public (profile reads, comment submission, candle lighting).
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, manager); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// CallerEmail returns the verified email of the caller, or "" when anonymous.
func CallerEmail(c *gin.Context) string {
	return c.GetString(CtxUserEmail)
}

// CallerName returns the display name from the token, or "" when anonymous.
func CallerName(c *gin.Context) string {
	return c.GetString(CtxUserName)
}

func parseBearer(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := manager.VerifyToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxUserEmail, claims.Email)
	c.Set(CtxUserName, claims.Name)
}
