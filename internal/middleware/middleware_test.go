package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 2, time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("1.1.1.1"))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, rl.Cleanup())
}

func TestRateLimit_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(NewRateLimiter(0.001, 1, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAuth(t *testing.T) {
	issuer := service.NewTokenIssuer("secret", time.Hour)
	token, _, err := issuer.Issue(&models.User{ID: 7, Username: "minji", Role: models.RoleUser})
	require.NoError(t, err)

	r := gin.New()
	r.Use(Logger(zaptest.NewLogger(t)))
	whoami := func(c *gin.Context) {
		if claims := ClaimsFrom(c); claims != nil {
			c.String(http.StatusOK, claims.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	}
	r.GET("/private", RequireAuth(issuer), whoami)
	r.GET("/public", OptionalAuth(issuer), whoami)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"private with token", "/private", "Bearer " + token, http.StatusOK, "minji"},
		{"private lowercase scheme", "/private", "bearer " + token, http.StatusOK, "minji"},
		{"private without token", "/private", "", http.StatusUnauthorized, ""},
		{"private forged", "/private", "Bearer abc.def.ghi", http.StatusUnauthorized, ""},
		{"public anonymous", "/public", "", http.StatusOK, "anonymous"},
		{"public bad token", "/public", "Bearer nope", http.StatusOK, "anonymous"},
		{"public with token", "/public", "Bearer " + token, http.StatusOK, "minji"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}
