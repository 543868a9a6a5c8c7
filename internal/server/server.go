package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/culina/backend/config"
	"github.com/culina/backend/internal/database"
	"github.com/culina/backend/internal/router"
	"github.com/culina/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	log    *zap.Logger

	// cancel ends the context every request derives from, which releases open feed streams
	cancel context.CancelFunc
}

// New connects the stores, builds the services and mounts the routes
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, log)
		if err != nil {
			if config.IsProduction() {
				return nil, err
			}
			log.Warn("redis unavailable, continuing without it", zap.Error(err))
			redisClient = nil
		}
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	switch {
	case errors.Is(err, config.ErrStorageNotConfigured):
		log.Info("image storage not configured")
		s3Config = nil
	case err != nil:
		return nil, fmt.Errorf("image storage: %w", err)
	}

	return NewWithDeps(cfg, db, redisClient, s3Config, log), nil
}

// NewWithDeps builds the server around already opened stores. redisClient and s3Config may be nil.
func NewWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, log *zap.Logger) *Server {
	var notifier service.Notifier = service.NewLocalNotifier()
	if redisClient != nil {
		notifier = service.NewRedisNotifier(redisClient, log)
	}

	profiles := service.NewProfileService(db, log)
	ingredients := service.NewIngredientService(db, log)
	services := router.Services{
		Auth:       service.NewAuthService(db, cfg.JWTSecret, log),
		Profile:    profiles,
		Onboarding: service.NewOnboardingService(redisClient),
		Ingredient: ingredients,
		Image:      service.NewImageService(s3Config, ingredients, log),
		Recipe:     service.NewRecipeService(db, notifier, log),
		Feed:       service.NewFeedService(db, notifier, log),
		LLM: service.NewLLMService(service.LLMConfig{
			APIKey: cfg.LLMAPIKey,
			APIURL: cfg.LLMAPIURL,
			Model:  cfg.LLMModel,
		}, redisClient, profiles, ingredients, log),
	}

	engine := router.SetupRouter(router.Options{
		DB:          db,
		Redis:       redisClient,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		Services:    services,
	})

	baseCtx, cancel := context.WithCancel(context.Background())
	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return baseCtx },
		},
		db:     db,
		redis:  redisClient,
		log:    log,
		cancel: cancel,
	}
}

// Handler exposes the routes for in-process callers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve accepts connections on l until Shutdown is called
func (s *Server) Serve(l net.Listener) error {
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown ends open streams, drains in-flight requests and closes the stores
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	err := s.http.Shutdown(ctx)

	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			s.log.Warn("failed to close redis", zap.Error(cerr))
		}
	}
	if sqlDB, derr := s.db.DB(); derr == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			s.log.Warn("failed to close database", zap.Error(cerr))
		}
	}
	return err
}
