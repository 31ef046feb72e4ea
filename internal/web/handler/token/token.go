// Package token serves password login and logout for bearer tokens.
package token

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CryptoYield/CryptoYield/internal/auth"
	"github.com/CryptoYield/CryptoYield/internal/web/handler"
)

const (
	// Path is the route group of the token endpoints.
	Path = "/auth/v1"

	// LoginPath issues a token for email and password.
	LoginPath = "/token"

	// LogoutPath deletes the session of the bearer.
	LogoutPath = "/logout"
)

// Credentials is the body of a login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service is the token handler service.
type Service struct {
	handler.Service
	auth *auth.Service
}

// Init initializes the token handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Auth == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.auth = deps.Auth

	app.Route(Path, func(router fiber.Router) {
		router.Post(LoginPath, s.Login)
		router.Post(LogoutPath, auth.RequireToken(deps.Auth), s.Logout)
	})

	return nil
}

// Login handles a password login.
func (s *Service) Login(c *fiber.Ctx) error {
	var creds Credentials

	if err := c.App().Config().JSONDecoder(c.Body(), &creds); err != nil || creds.Email == "" || creds.Password == "" {
		return handler.Error(c, auth.ErrInvalidCredentials)
	}

	tok, err := s.auth.Login(creds.Email, creds.Password)
	if err != nil {
		log.Warn().Err(err).Str("user", creds.Email).Msg("login rejected")

		if errors.Is(err, auth.ErrUserAccountDisabled) {
			return handler.Error(c, err)
		}

		return handler.Error(c, auth.ErrInvalidCredentials)
	}

	log.Info().Str("user", creds.Email).Msg("login succeeded")

	return c.JSON(tok)
}

// Logout deletes the session of the bearer token.
func (s *Service) Logout(c *fiber.Ctx) error {
	raw, _ := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	account := auth.AccountFromContext(c)

	if err := s.auth.Logout(raw); err != nil {
		log.Error().Err(err).Str("user", account.Email).Msg("failed to delete session")
		return handler.Error(c, err)
	}

	log.Info().Str("user", account.Email).Msg("logged out")

	return c.SendStatus(fiber.StatusNoContent)
}
