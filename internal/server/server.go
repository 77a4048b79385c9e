// Package server assembles the HTTP application from its dependencies.
package server

import (
	"context"
	"errors"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps are the external resources the application runs on. Redis and
// Publisher are optional.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher services.OrderEventPublisher
	// AccessLog enables the request logger.
	AccessLog bool
}

// New wires repositories, services and handlers into a Fiber app.
func New(deps Deps) *fiber.App {
	cfg := deps.Config

	uow := repositories.NewGORMUnitOfWork(deps.DB)
	store := repositories.NewGORMStore(deps.DB)
	cache := services.NewProductCache(deps.Redis, cfg.ProductCacheTTL)

	authService := services.NewAuthService(store.Users, cfg.JWTSecret, cfg.JWTExpiration)
	categoryService := services.NewCategoryService(store.Categories, store.Products)
	productService := services.NewProductService(uow, cache, services.NewFileService(cfg.ImageDir))
	cartService := services.NewCartService(uow)
	addressService := services.NewAddressService(store.Addresses)
	orderService := services.NewOrderService(uow, deps.Publisher, cache)

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: ErrorHandler,
		BodyLimit:    8 * 1024 * 1024,
	})

	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())
	app.Use(middleware.Prometheus())

	app.Get("/health", healthHandler(deps))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Static("/images", cfg.ImageDir)

	guards := handlers.Guards{
		Auth:   middleware.AuthRequired(authService, cfg.JWTCookie),
		Admin:  middleware.RoleRequired(models.RoleAdmin),
		Seller: middleware.RoleRequired(models.RoleSeller, models.RoleAdmin),
	}

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, cfg.JWTCookie, cfg.JWTExpiration).RegisterRoutes(apiV1, guards)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(apiV1, guards)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1, guards)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1, guards)
	handlers.NewAddressHandler(addressService).RegisterRoutes(apiV1, guards)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1, guards)

	return app
}

// ErrorHandler renders every error returned by a handler as
// {"message": ..., "status": false} with the status its kind maps to.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := apperror.StatusCode(err)
	body := fiber.Map{"message": err.Error(), "status": false}

	var fe *fiber.Error
	var ve *apperror.ValidationError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.As(err, &ve):
		body["message"] = "Validation failed"
		body["errors"] = ve.Fields
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		body["message"] = "internal server error"
	}
	return c.Status(code).JSON(body)
}

func healthHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		code := fiber.StatusOK

		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "unreachable"
			status["status"] = "degraded"
			code = fiber.StatusServiceUnavailable
		} else {
			status["database"] = "connected"
		}

		switch {
		case deps.Redis == nil:
			status["cache"] = "disabled"
		case deps.Redis.Ping(ctx).Err() != nil:
			status["cache"] = "unreachable"
		default:
			status["cache"] = "connected"
		}

		if deps.Publisher == nil {
			status["messaging"] = "disabled"
		} else {
			status["messaging"] = "connected"
		}

		return c.Status(code).JSON(status)
	}
}
