package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/api"
	"github.com/jengzang/tour-planner-go/internal/cache"
	"github.com/jengzang/tour-planner-go/internal/database"
	"github.com/jengzang/tour-planner-go/internal/middleware"
	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/jengzang/tour-planner-go/internal/provider/googlemaps"
	"github.com/jengzang/tour-planner-go/internal/provider/googleroutes"
	"github.com/jengzang/tour-planner-go/internal/provider/openweather"
	"github.com/jengzang/tour-planner-go/internal/repository"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	limiterIdle     = 10 * time.Minute
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP API server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 初始化数据库
		db, err := database.Open(database.Config{Path: cfg.DBPath}, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if _, err := database.NewMigrationManager(db, logger).Run(); err != nil {
			return err
		}

		httpClient := provider.NewHTTPClient(providerOptions(cfg), logger)
		forecasts := openweather.New(httpClient, openweather.Config{
			BaseURL: cfg.OpenWeather.BaseURL,
			APIKey:  cfg.OpenWeather.APIKey,
		}, logger)
		routes := googleroutes.New(httpClient, googleroutes.Config{
			BaseURL:  cfg.Google.RoutesURL,
			APIKey:   cfg.Google.APIKey,
			Language: cfg.Google.Language,
		}, logger)
		geocoder := googlemaps.New(httpClient, googlemaps.Config{
			GeocodeURL: cfg.Google.MapsURL,
			PlacesURL:  cfg.Google.PlacesURL,
			APIKey:     cfg.Google.APIKey,
			Language:   cfg.Google.Language,
			Region:     cfg.Google.Region,
		}, logger)

		var forecastCache cache.ForecastCache = cache.NewMemory()
		if cfg.RedisAddr != "" {
			rc, err := cache.NewRedis(ctx, cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer rc.Close()
			forecastCache = rc
			logger.Info("forecast cache on redis", zap.String("addr", cfg.RedisAddr))
		}

		sessions := service.NewSessionService(cfg.SessionTTL, logger, planner.WithDateLayout(cfg.DateLayout))
		if err := sessions.StartSweeper(cfg.SweepSpec); err != nil {
			return err
		}

		tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
		users := repository.NewUserRepository(db)
		threads := repository.NewThreadRepository(db)
		plannerSvc := service.NewPlannerService(sessions, geocoder, routes, logger)

		s := api.Services{
			Tokens:   tokens,
			Users:    service.NewUserService(users, tokens, logger),
			Threads:  service.NewThreadService(threads, users, logger),
			Comments: service.NewCommentService(repository.NewCommentRepository(db), threads, users, logger),
			Traffic:  service.NewTrafficService(repository.NewTrafficRepository(db), plannerSvc, logger),
			Weather:  service.NewWeatherService(forecasts, forecastCache, cfg.ForecastTTL, plannerSvc, logger),
			Sessions: sessions,
			Planner:  plannerSvc,
		}

		limiterStop := make(chan struct{})
		defer close(limiterStop)
		if cfg.RateLimit > 0 {
			s.Limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, limiterIdle)
			go s.Limiter.Run(limiterStop)
		}

		if !cfg.DevLog {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := &http.Server{
			Addr:              cfg.Port,
			Handler:           api.SetupRouter(cfg, logger, s),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", zap.String("addr", cfg.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			logger.Info("shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		sessions.StopSweeper(shutdownCtx)
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
