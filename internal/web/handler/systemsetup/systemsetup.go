// Package systemsetup serves the system_setup function.
package systemsetup

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CryptoYield/CryptoYield/internal/setup"
	"github.com/CryptoYield/CryptoYield/internal/web/handler"
)

const (
	// Name is the function name below the functions prefix.
	Name = "system_setup"

	// MsgSuccess is answered after a completed setup.
	MsgSuccess = "System setup completed successfully"
)

// ErrInvalidBody is returned for request bodies that are not a JSON object.
var ErrInvalidBody = errors.New("Invalid request body") //nolint:staticcheck // client visible

// Service is the system_setup handler service.
type Service struct {
	handler.Service
	setup *setup.Service
}

// Path returns the route of the function below prefix.
func Path(prefix string) string {
	return prefix + "/" + Name
}

// Init initializes the system_setup handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Config == nil || deps.Setup == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.setup = deps.Setup

	app.Post(Path(deps.Config.Webserver.FunctionsPrefix), s.Post)

	return nil
}

// Post runs the setup workflow.
func (s *Service) Post(c *fiber.Ctx) error {
	var req setup.Request

	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		log.Warn().Err(err).Msg("system setup rejected, invalid body")
		return handler.Error(c, ErrInvalidBody)
	}

	result, err := s.setup.Submit(c.UserContext(), req)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   MsgSuccess,
		"adminUser": result.AdminUser,
	})
}
