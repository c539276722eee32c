package api

import (
	"context"
	"errors"
	"strings"

	"github.com/SageDevelopmentCode/dine-web/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	messageNotFound     = "not found"
	messageUnavailable  = "profile unavailable"
	messageInternal     = "internal error"
	statusClientClosed  = 499
	messageClientClosed = "request canceled"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) profileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrProfileNotFound) || errors.Is(err, services.ErrUnknownDomain) {
		return apiError(c, fiber.StatusNotFound, messageNotFound)
	}
	if errors.Is(c.UserContext().Err(), context.Canceled) {
		return apiError(c, statusClientClosed, messageClientClosed)
	}

	var sourceErr *services.DataSourceError
	if errors.As(err, &sourceErr) {
		handler.logger.Error("profile data source failure",
			zap.String("path", c.Path()),
			zap.String("domain", sourceErr.Domain),
			zap.String("lookup", sourceErr.Lookup),
			zap.Error(sourceErr.Err),
		)
		return apiError(c, fiber.StatusInternalServerError, messageUnavailable)
	}

	handler.logger.Error("profile request failed", zap.String("path", c.Path()), zap.Error(err))
	return apiError(c, fiber.StatusInternalServerError, messageInternal)
}

// ErrorHandler renders errors that escape the handlers, including routing
// errors raised by fiber itself and recovered panics, as JSON.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusNotFound {
			return apiError(c, fiberErr.Code, messageNotFound)
		}
		return apiError(c, fiberErr.Code, strings.ToLower(fiberErr.Message))
	}

	handler.logger.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
	return apiError(c, fiber.StatusInternalServerError, messageInternal)
}
