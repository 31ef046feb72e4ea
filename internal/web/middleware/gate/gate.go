package gate

import (
	"strings"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
)

// MsgNotInitialized is the error answered while the system is uninitialized.
const MsgNotInitialized = "System is not initialized"

// Config configures the gate middleware.
type Config struct {
	// DB holds the settings store.
	DB *gorm.DB

	// Exempt lists path prefixes served while uninitialized.
	Exempt []string
}

// New creates the initialization gate middleware.
func New(cfg Config) fiber.Handler {
	var initialized atomic.Bool

	return func(c *fiber.Ctx) error {
		if initialized.Load() || c.Method() == fiber.MethodOptions || IsExempt(c, cfg.Exempt) {
			return c.Next()
		}

		if !system.IsInitialized(cfg.DB.WithContext(c.UserContext())) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": MsgNotInitialized})
		}

		initialized.Store(true)

		return c.Next()
	}
}

// IsExempt checks if the current request path starts with one of the prefixes.
// Paths compare case sensitively like the routes they guard.
func IsExempt(c *fiber.Ctx, prefixes []string) bool {
	p := c.Path()

	for _, prefix := range prefixes {
		if p == prefix || strings.HasPrefix(p, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}

	return false
}
