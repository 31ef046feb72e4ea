// Package backups serves the admin only listing, restore and deletion of reset backups.
package backups

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	logfiber "github.com/CryptoYield/CryptoYield/internal/logger/adapter/fiber"
	"github.com/CryptoYield/CryptoYield/internal/reset"
	"github.com/CryptoYield/CryptoYield/internal/web/handler"
)

// Path is the route group of the backup endpoints.
const Path = "/api/system/backups"

// Service is the backups handler service.
type Service struct {
	handler.Service
	reset *reset.Service
}

// Init initializes the backups handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Reset == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.reset = deps.Reset

	app.Route(Path, func(router fiber.Router) {
		router.Use(s.RequireAdmin)
		router.Get(handler.RootPath, s.List)
		router.Get("/:key", s.Get)
		router.Delete("/:key", s.Delete)
		router.Post("/:key/restore", s.Restore)
	})

	return nil
}

// RequireAdmin rejects callers that are not in the admin registry.
func (s *Service) RequireAdmin(c *fiber.Ctx) error {
	account, err := s.reset.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return s.fail(c, err)
	}

	c.Locals(logfiber.LocalsCallerKey, account.Email)

	return c.Next()
}

// List answers all backups, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	list, err := s.reset.ListBackups(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"backups": list})
}

// Get answers the tables and row counts of one backup.
func (s *Service) Get(c *fiber.Ctx) error {
	b, err := s.reset.GetBackup(c.UserContext(), c.Params("key"))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(b)
}

// Restore replaces the backed up tables with the rows of the backup.
func (s *Service) Restore(c *fiber.Ctx) error {
	key := c.Params("key")

	log.Info().Str("backup", key).Interface("user", c.Locals(logfiber.LocalsCallerKey)).Msg("restore requested")

	result, err := s.reset.Restore(c.UserContext(), key)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Backup restored successfully",
		"backupKey": result.BackupKey,
		"tables":    result.Tables,
	})
}

// Delete removes one backup.
func (s *Service) Delete(c *fiber.Ctx) error {
	key := c.Params("key")

	if err := s.reset.DeleteBackup(c.UserContext(), key); err != nil {
		return s.fail(c, err)
	}

	log.Info().Str("backup", key).Interface("user", c.Locals(logfiber.LocalsCallerKey)).Msg("backup deleted")

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Service) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest

	switch {
	case errors.Is(err, reset.ErrMissingAuthHeader), errors.Is(err, reset.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, reset.ErrNotAdmin):
		status = fiber.StatusForbidden
	case errors.Is(err, reset.ErrBackupNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, reset.ErrInProgress):
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
