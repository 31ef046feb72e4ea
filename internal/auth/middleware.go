package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CryptoYield/CryptoYield/internal/db/models"
	logfiber "github.com/CryptoYield/CryptoYield/internal/logger/adapter/fiber"
)

// LocalsAccountKey is the fiber locals key holding the resolved *models.Account.
const LocalsAccountKey = "account"

// RequireToken creates Fiber middleware resolving the bearer token into an account.
func RequireToken(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing Authorization header"})
		}

		account, err := svc.ResolveToken(raw)
		if err != nil {
			log.Warn().Err(err).Msg("rejected bearer token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		c.Locals(LocalsAccountKey, account)
		c.Locals(logfiber.LocalsCallerKey, account.Email)

		return c.Next()
	}
}

// AccountFromContext returns the account resolved by RequireToken.
func AccountFromContext(c *fiber.Ctx) *models.Account {
	account, _ := c.Locals(LocalsAccountKey).(*models.Account)
	return account
}
