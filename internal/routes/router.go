package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/internal/config"
	"github.com/Ansy5566/ctosaas/internal/delivery/http/handler"
	"github.com/Ansy5566/ctosaas/internal/infrastructure/memory"
	"github.com/Ansy5566/ctosaas/internal/logger"
	"github.com/Ansy5566/ctosaas/internal/middleware"
	"github.com/Ansy5566/ctosaas/internal/usecase/auth"
	"github.com/Ansy5566/ctosaas/internal/usecase/export"
	"github.com/Ansy5566/ctosaas/internal/usecase/product"
	"github.com/Ansy5566/ctosaas/internal/usecase/system"
	"github.com/Ansy5566/ctosaas/internal/usecase/task"
	"github.com/Ansy5566/ctosaas/internal/usecase/user"
)

// SetupRoutes wires services over store and returns the HTTP engine.
// Background jobs run until ctx is cancelled.
func SetupRoutes(ctx context.Context, cfg *config.Config, store *memory.Store) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order: recovery, request ID, logging, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Request.MaxBytes))
	router.Use(middleware.RateLimitMiddleware(
		middleware.NewRateLimiter(ctx, cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst),
	))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := memory.NewUserRepository(store)
	resetTokenRepository := memory.NewResetTokenRepository(store)
	sessionRepository := memory.NewSessionRepository(store)
	subscriptionRepository := memory.NewSubscriptionRepository(store)
	taskRepository := memory.NewTaskRepository(store)
	productRepository := memory.NewProductRepository(store)
	exportRepository := memory.NewExportRepository(store)

	authService := auth.NewService(userRepository, resetTokenRepository, sessionRepository, cfg)
	authHandler := handler.NewAuthHandler(authService, cfg)

	userService := user.NewService(userRepository, subscriptionRepository, taskRepository, productRepository)
	userHandler := handler.NewUserHandler(userService, cfg)

	taskService := task.NewService(taskRepository, productRepository, subscriptionRepository, task.MockCollector{}, cfg.Quota.Enforce)
	taskHandler := handler.NewTaskHandler(taskService)

	productHandler := handler.NewProductHandler(product.NewService(productRepository))
	exportHandler := handler.NewExportHandler(export.NewService(exportRepository, productRepository))
	systemHandler := handler.NewSystemHandler(system.NewService(memory.NewSystemRepository(store)))

	if interval := cfg.CleanupInterval(); interval > 0 {
		go authService.StartExpiredCleanupJob(ctx, interval)
	}

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		systemHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.SessionMiddleware(authService))
		{
			userHandler.RegisterRoutes(protected)
			taskHandler.RegisterRoutes(protected)
			productHandler.RegisterRoutes(protected)
			exportHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("All routes initialized",
		zap.Bool("quota_enforced", cfg.Quota.Enforce),
		zap.Duration("session_ttl", cfg.SessionTTL()),
	)
	return router
}
