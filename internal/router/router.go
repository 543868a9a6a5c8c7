package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/culina/backend/internal/api"
	"github.com/culina/backend/internal/middleware"
	"github.com/culina/backend/internal/service"
)

// Services holds the service implementations behind the HTTP handlers
type Services struct {
	Auth       service.IAuthService
	Profile    service.IProfileService
	Onboarding service.IOnboardingService
	Ingredient service.IIngredientService
	Image      service.IImageService
	Recipe     service.IRecipeService
	Feed       service.IFeedService
	LLM        service.ILLMService
}

// Options configures SetupRouter. Redis may be nil.
type Options struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	CORSOrigins []string
	Services    Services
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	if err := middleware.RegisterValidators(); err != nil {
		opts.Logger.Error("failed to register validators", zap.Error(err))
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(opts.Logger),
		middleware.RequestLogger(opts.Logger),
		middleware.Metrics(),
	)
	if len(opts.CORSOrigins) > 0 {
		router.Use(middleware.CORS(opts.CORSOrigins))
	}
	router.Use(middleware.ErrorHandler(opts.Logger))

	api.NewHealthHandler(opts.DB).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	api.NewAuthHandler(opts.Services.Auth).RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(opts.Services.Auth))
	{
		var limiter *middleware.RateLimiter
		if opts.Redis != nil {
			limiter = middleware.NewGenerationRateLimiter(opts.Redis, opts.Logger)
		}

		api.NewProfileHandler(opts.Services.Profile, opts.Services.Onboarding).RegisterRoutes(protected)
		api.NewIngredientHandler(opts.Services.Ingredient, opts.Services.Image).RegisterRoutes(protected)
		api.NewRecipeHandler(opts.Services.Recipe).RegisterRoutes(protected)
		api.NewFeedHandler(opts.Services.Feed).RegisterRoutes(protected)
		api.NewLLMHandler(opts.Services.LLM, limiter).RegisterRoutes(protected)
	}

	return router
}
