// Package dashboard answers the signed-in landing view: who the caller is
// and the effective capability set they hold on every category.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the path to the dashboard endpoint.
	Path = "/dashboard"
)

// Service is the dashboard handler service.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService

	app.Get(Path, s.Get)

	return nil
}

// Get returns the caller's profile and per-category capability matrix.
func (s *Service) Get(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	perms, err := s.authService.EffectivePermissions(userID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to resolve permissions")

		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":            user.ID,
			"name":          user.Name,
			"display_name":  user.DisplayName,
			"email":         user.Email,
			"role":          user.Role,
			"administrator": user.IsAdministrator(),
		},
		"permissions": perms,
	})
}
