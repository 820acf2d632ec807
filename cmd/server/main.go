package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/snoody/tft-tierlist/internal/api"
	"github.com/snoody/tft-tierlist/internal/config"
	"github.com/snoody/tft-tierlist/internal/logging"
	"github.com/snoody/tft-tierlist/internal/metrics"
	"github.com/snoody/tft-tierlist/internal/repository/postgres"
	"github.com/snoody/tft-tierlist/internal/service"
	"github.com/snoody/tft-tierlist/internal/video"
	"github.com/snoody/tft-tierlist/internal/websocket"
	"go.uber.org/zap"
)

const videoCacheKey = "tft:videos"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	repos := postgres.NewRepositories(db)

	cat, err := service.LoadCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	m := metrics.NewCollector("tft_tierlist")

	videos := newVideoService(ctx, cfg, m, logger)

	services := service.NewServices(repos, cat, videos, cfg, m, logger)

	if cfg.AdminName != "" {
		if _, err := services.Auth.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminPassword); err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
	}

	scheduler := cron.New()
	if videos != nil && cfg.VideoRefreshSchedule != "" {
		_, err := scheduler.AddFunc(cfg.VideoRefreshSchedule, func() {
			if err := videos.Refresh(context.Background()); err != nil {
				logger.Warn("scheduled video refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("invalid VIDEO_REFRESH_SCHEDULE", zap.String("schedule", cfg.VideoRefreshSchedule), zap.Error(err))
		}
	}
	if cfg.SessionPurgeSchedule != "" {
		_, err := scheduler.AddFunc(cfg.SessionPurgeSchedule, func() {
			if _, err := services.Auth.PurgeExpiredSessions(context.Background()); err != nil {
				logger.Warn("session purge failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("invalid SESSION_PURGE_SCHEDULE", zap.String("schedule", cfg.SessionPurgeSchedule), zap.Error(err))
		}
	}
	scheduler.Start()

	hub := websocket.NewHub(m, logger.Named("builder"))
	go hub.Run()

	router := api.NewRouter(services, hub, cfg, m, logger)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("set", cat.Set()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	<-scheduler.Stop().Done()
	hub.Stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// newVideoService returns nil when no YouTube key is configured, which turns
// the videos endpoint off.
func newVideoService(ctx context.Context, cfg *config.Config, m *metrics.Collector, logger *zap.Logger) *service.VideoService {
	if cfg.YouTubeAPIKey == "" || len(cfg.YouTubeChannels) == 0 {
		logger.Info("video feed disabled")
		return nil
	}

	var cache video.Cache = video.NewMemoryCache()
	if cfg.RedisURL != "" {
		client, err := video.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory video cache", zap.Error(err))
		} else {
			cache = video.NewRedisCache(client, videoCacheKey, 24*time.Hour)
		}
	}

	client := video.NewClient(cfg.YouTubeAPIURL, cfg.YouTubeAPIKey, nil)
	return service.NewVideoService(client, cache, cfg.YouTubeChannels, cfg.VideoCacheTTL, m, logger.Named("videos"))
}
