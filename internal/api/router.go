package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/config"
	"github.com/jengzang/tour-planner-go/internal/handler"
	"github.com/jengzang/tour-planner-go/internal/middleware"
	"github.com/jengzang/tour-planner-go/internal/service"
	"go.uber.org/zap"
)

// Services are the dependencies the HTTP surface is built on
type Services struct {
	Tokens   *service.TokenIssuer
	Users    *service.UserService
	Threads  *service.ThreadService
	Comments *service.CommentService
	Traffic  *service.TrafficService
	Weather  *service.WeatherService
	Sessions *service.SessionService
	Planner  *service.PlannerService
	Limiter  *middleware.RateLimiter
}

// SetupRouter builds the gin engine with every route mounted
func SetupRouter(cfg *config.Config, logger *zap.Logger, s Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.MaxAge = 12 * time.Hour
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	if s.Limiter != nil {
		r.Use(middleware.RateLimit(s.Limiter))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Tour Planner API is running",
			"sessions": s.Sessions.Len(),
		})
	})

	users := handler.NewUserHandler(s.Users)
	threads := handler.NewThreadHandler(s.Threads)
	comments := handler.NewCommentHandler(s.Comments)
	traffic := handler.NewTrafficHandler(s.Traffic)
	weather := handler.NewWeatherHandler(s.Weather)
	sessions := handler.NewSessionHandler(s.Sessions, s.Planner)

	auth := middleware.RequireAuth(s.Tokens)
	optional := middleware.OptionalAuth(s.Tokens)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", users.Register)
		v1.POST("/auth/login", users.Login)

		me := v1.Group("/users/me", auth)
		{
			me.GET("", users.Me)
			me.PUT("", users.UpdateMe)
		}

		th := v1.Group("/threads")
		{
			th.GET("", threads.List)
			th.GET("/:id", optional, threads.Get)
			th.POST("", auth, threads.Create)
			th.PUT("/:id", auth, threads.Update)
			th.DELETE("/:id", auth, threads.Delete)
			th.POST("/:id/like", auth, threads.ToggleLike)
		}

		cm := v1.Group("/comments")
		{
			cm.GET("/thread/:threadId", comments.ByThread)
			cm.POST("", auth, comments.Create)
			cm.PUT("/:id", auth, comments.Update)
			cm.DELETE("/:id", auth, comments.Delete)
		}

		tr := v1.Group("/traffic")
		{
			tr.POST("", traffic.Create)
			tr.GET("/tour/:tourId", traffic.ByTour)
		}

		v1.GET("/weather", weather.Forecast)

		v1.POST("/sessions", sessions.Create)
		ss := v1.Group("/sessions/:id")
		{
			ss.GET("", sessions.Get)
			ss.DELETE("", sessions.Delete)
			ss.GET("/summary", sessions.Summary)

			ss.POST("/days", sessions.AddDay)
			ss.PUT("/days/current", sessions.SelectDay)
			ss.POST("/days/:day/places", sessions.AddPlace)
			ss.PUT("/days/:day/places/:placeId", sessions.EditPlace)
			ss.DELETE("/days/:day/places/:placeId", sessions.RemovePlace)

			ss.PUT("/pending", sessions.SetPending)
			ss.DELETE("/pending", sessions.ClearPending)
			ss.POST("/pending/lookup", sessions.LookupPending)
			ss.POST("/pending/draft", sessions.PendingDraft)

			ss.GET("/places", sessions.TravelPlaces)
			ss.DELETE("/places", sessions.ClearTravelPlaces)
			ss.DELETE("/places/:index", sessions.RemoveTravelPlace)
			ss.GET("/places/:index/weather", weather.PlaceForecast)

			ss.POST("/endpoints/lookup", sessions.LookupEndpoint)
			ss.PUT("/endpoints/mode", sessions.SetMode)
			ss.POST("/endpoints/swap", sessions.SwapEndpoints)
			ss.DELETE("/endpoints", sessions.ResetEndpoints)

			ss.POST("/routes/search", sessions.SearchRoutes)
			ss.PUT("/route", sessions.SelectRoute)
			ss.DELETE("/route", sessions.ClearRoute)
			ss.POST("/route/traffic", traffic.SaveRoute)
		}
	}

	return r
}
