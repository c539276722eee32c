package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application serving handler. The request logger
// wraps recover so recovered panics are still logged with their status.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Dine",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(handler.RequestLogger)
	app.Use(recover.New())
	RegisterRoutes(app, handler)
	return app
}
