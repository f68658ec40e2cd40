// Package logout tears down the caller's session.
package logout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler/login"
	"github.com/swimfed-admin/swimfed-admin/internal/web/session"
)

const (
	// Path is the path to the logout endpoint.
	Path = "/logout"
)

// Service is the logout handler service.
type Service struct{}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	app.Post(Path, s.Post)

	return nil
}

// Post destroys the session and clears the cookie.
func (s *Service) Post(c *fiber.Ctx) error {
	sessionID := c.Cookies(login.CookieName)

	if sessionID != "" {
		if err := session.Destroy(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to destroy session")
		}
	}

	c.ClearCookie(login.CookieName)

	return c.JSON(fiber.Map{"status": "signed out"})
}
