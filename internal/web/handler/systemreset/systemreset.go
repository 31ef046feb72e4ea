// Package systemreset serves the system_reset function.
package systemreset

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CryptoYield/CryptoYield/internal/reset"
	"github.com/CryptoYield/CryptoYield/internal/web/handler"
)

const (
	// Name is the function name below the functions prefix.
	Name = "system_reset"

	// Alias is the dashed name the browser client invokes.
	Alias = "system-reset"
)

// ErrInvalidBody is returned for request bodies that are not a JSON object.
var ErrInvalidBody = errors.New("Invalid request body") //nolint:staticcheck // client visible

// Service is the system_reset handler service.
type Service struct {
	handler.Service
	reset *reset.Service
}

// Init initializes the system_reset handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Config == nil || deps.Reset == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.reset = deps.Reset

	prefix := deps.Config.Webserver.FunctionsPrefix
	app.Post(prefix+"/"+Name, s.Post)
	app.Post(prefix+"/"+Alias, s.Post)

	return nil
}

// Post runs the reset workflow for the bearer of the Authorization header.
func (s *Service) Post(c *fiber.Ctx) error {
	var req reset.Request

	header := c.Get(fiber.HeaderAuthorization)

	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		// unauthenticated callers learn nothing about the body
		if _, authErr := s.reset.Authorize(c.UserContext(), header); authErr != nil {
			return handler.Error(c, authErr)
		}

		log.Warn().Err(err).Msg("system reset rejected, invalid body")
		return handler.Error(c, ErrInvalidBody)
	}

	result, err := s.reset.Reset(c.UserContext(), header, req)
	if err != nil {
		var phaseErr *reset.PhaseError
		if !errors.As(err, &phaseErr) {
			return handler.Error(c, err)
		}

		body := fiber.Map{
			"error": err.Error(),
			"phase": phaseErr.Phase,
		}
		if phaseErr.BackupKey != "" {
			body["backupKey"] = phaseErr.BackupKey
		}

		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   result.Message,
		"backupKey": result.BackupKey,
	})
}
