package controllers

import (
	"context"
	"time"

	"campus/database"
	"campus/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Health(db *gorm.DB, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Database unavailable!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	}
}
