package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/jengzang/tour-planner-go/pkg/response"
)

const claimsKey = "claims"

// TokenParser verifies bearer tokens
type TokenParser interface {
	Parse(token string) (*service.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Missing bearer token")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present and never rejects
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims, err := tokens.Parse(raw); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims set by the auth middleware, or nil
func ClaimsFrom(c *gin.Context) *service.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
