package handlers

import (
	"pawpay/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness of the process and its backing stores.
func HealthCheck(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":  "ok",
		"service": "pawpay",
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	} else {
		status["database"] = "ok"
	}

	if repositories.CacheService != nil {
		if err := repositories.CacheService.HealthCheck(c.Context()); err != nil {
			status["cache"] = "unreachable"
		} else {
			status["cache"] = "ok"
		}
	}

	if status["status"] != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return c.JSON(status)
}
