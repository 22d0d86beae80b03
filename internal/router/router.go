// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hellofresh/health-go/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/cache"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/events"
	"github.com/javajoker/storefront/internal/handlers"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/services"
)

const serviceVersion = "1.0.0"

// Handlers groups everything New mounts.
type Handlers struct {
	Product  *handlers.ProductHandler
	Category *handlers.CategoryHandler
	Upload   *handlers.UploadHandler
	Auth     *handlers.AuthHandler
	Stats    *handlers.StatsHandler
	Health   http.Handler
}

// Initialize builds repositories, services and handlers on top of db.
// redisClient may be nil, in which case nothing is cached.
func Initialize(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, publisher events.Publisher) (*gin.Engine, error) {
	productCache := cache.NewNoopCache()
	if redisClient != nil {
		productCache = cache.NewRedisCache(redisClient, cfg.Redis.DefaultTTL())
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	productService := services.NewProductService(productRepo, categoryRepo, productCache, publisher, cfg.Redis.DefaultTTL())
	categoryService := services.NewCategoryService(categoryRepo, publisher)
	authService := services.NewAuthService(userRepo, cfg)
	statsService := services.NewStatsService(productRepo, productCache, cfg.Stats.PlatformFeePercent, cfg.Stats.CacheTTL())

	healthHandler, err := newHealthHandler(db, redisClient)
	if err != nil {
		return nil, err
	}

	r := New(cfg, Handlers{
		Product:  handlers.NewProductHandler(productService),
		Category: handlers.NewCategoryHandler(categoryService),
		Upload:   handlers.NewUploadHandler(storageService, cfg.Upload.MaxFileMB),
		Auth:     handlers.NewAuthHandler(authService),
		Stats:    handlers.NewStatsHandler(statsService),
		Health:   healthHandler,
	})

	// Local uploads are served from disk
	if storageService.IsLocal() {
		r.Static("/uploads", cfg.Upload.LocalDir)
	}

	return r, nil
}

// New mounts h on a fresh engine.
func New(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins, cfg.Auth.Enforce))
	r.Use(middleware.I18nMiddleware())
	if cfg.Server.RateLimit {
		r.Use(middleware.GeneralRateLimit())
	}

	// The multipart parser keeps this much in memory and spills the rest to disk
	r.MaxMultipartMemory = 32 << 20

	if h.Health != nil {
		r.GET("/health", gin.WrapH(h.Health))
	}
	r.GET("/metrics", middleware.MetricsHandler())

	var authLimit, uploadLimit []gin.HandlerFunc
	if cfg.Server.RateLimit {
		authLimit = append(authLimit, middleware.AuthRateLimit())
		uploadLimit = append(uploadLimit, middleware.UploadRateLimit())
	}

	api := r.Group("/api")
	{
		api.GET("/products", h.Product.GetProducts)
		api.GET("/categories", h.Category.GetCategories)
		api.GET("/stats", h.Stats.GetStats)
		api.POST("/login", append(authLimit, h.Auth.Login)...)

		// Catalog mutations
		protected := api.Group("")
		protected.Use(middleware.AdminOnly(cfg.Auth.Enforce)...)
		{
			protected.POST("/products", h.Product.CreateProduct)
			protected.PUT("/products", h.Product.UpdateProduct)
			protected.DELETE("/products", h.Product.DeleteProduct)

			protected.POST("/categories", h.Category.CreateCategory)
			protected.DELETE("/categories", h.Category.DeleteCategory)

			protected.POST("/upload", append(uploadLimit, h.Upload.Upload)...)
			protected.POST("/users", h.Auth.CreateUser)
		}
	}

	return r
}

func newHealthHandler(db *gorm.DB, redisClient *redis.Client) (http.Handler, error) {
	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		},
	}
	if redisClient != nil {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: serviceVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, err
	}
	return h.Handler(), nil
}
