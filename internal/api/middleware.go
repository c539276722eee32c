package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger writes one access line per request. Errors from the chain are
// rendered here so the logged status is the one the client receives.
func (handler *Handler) RequestLogger(c *fiber.Ctx) error {
	started := time.Now()

	if chainErr := c.Next(); chainErr != nil {
		if err := c.App().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(started)),
	}
	if status >= fiber.StatusInternalServerError {
		handler.logger.Warn("request", fields...)
		return nil
	}
	handler.logger.Info("request", fields...)
	return nil
}
