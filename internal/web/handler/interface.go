package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/auth"
	"github.com/CryptoYield/CryptoYield/internal/config"
	"github.com/CryptoYield/CryptoYield/internal/reset"
	"github.com/CryptoYield/CryptoYield/internal/setup"
)

// Deps are the services shared by the web handlers.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Auth   *auth.Service
	Setup  *setup.Service
	Reset  *reset.Service
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}

// Error answers err as {"error": message} with status 400.
func Error(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
