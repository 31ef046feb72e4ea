// Package status serves the initialization state and the public site metadata.
package status

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/controller/system"
	"github.com/CryptoYield/CryptoYield/internal/web/handler"
)

// Path is the path of the status endpoint.
const Path = "/api/system/status"

// Response is the body of the status endpoint.
type Response struct {
	Initialized bool `json:"initialized"`
	system.SiteSettings
}

// Service is the status handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Init initializes the status handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.DB == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.db = deps.DB

	app.Get(Path, s.Get)

	return nil
}

// Get answers the initialization state. Store errors report uninitialized.
func (s *Service) Get(c *fiber.Ctx) error {
	db := s.db.WithContext(c.UserContext())

	resp := Response{
		Initialized:  system.IsInitialized(db),
		SiteSettings: system.SiteSettings{}.WithDefaults(),
	}

	if err := resp.SiteSettings.Load(db); err != nil {
		log.Error().Err(err).Msg("failed to load site settings")
	}

	return c.JSON(resp)
}
