// Package permission provides the admin surface for a group's capability
// grants. The grant set of a group is always replaced as a whole.
package permission

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	permissionctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/permission"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for permission management.
	Path = "/admin/group/:id/permissions"
)

// grantInput is one grant row in the replace request body.
type grantInput struct {
	CategoryID uint `json:"category_id"`
	View       bool `json:"view"`
	Submit     bool `json:"submit"`
	Revise     bool `json:"revise"`
	Exclude    bool `json:"exclude"`
	Approve    bool `json:"approve"`
}

// Service manages group permission grants.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. All permission management is administrator only.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db

	admin := auth.RequireAdministrator(authService)

	app.Get(Path, admin, s.Get)
	app.Put(Path, admin, s.Replace)

	return nil
}

// Get returns the grants held by a group.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	grants, err := permissionctl.GetByGroup(s.db, uint(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to load permissions")

		return handler.Internal(c)
	}

	return c.JSON(grants)
}

// Replace swaps the group's whole grant set in one transaction. Duplicate
// category rows in the request collapse to the last one.
func (s *Service) Replace(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	var input []grantInput
	if err := c.BodyParser(&input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	grants := make([]permissionctl.Grant, 0, len(input))
	for _, in := range input {
		grants = append(grants, permissionctl.Grant{
			CategoryID: in.CategoryID,
			View:       in.View,
			Submit:     in.Submit,
			Revise:     in.Revise,
			Exclude:    in.Exclude,
			Approve:    in.Approve,
		})
	}

	if err := permissionctl.ReplaceForGroup(s.db, uint(id), grants); err != nil {
		if errors.Is(err, permissionctl.ErrGroupNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to replace permissions")

		return handler.Internal(c)
	}

	perms, err := permissionctl.GetByGroup(s.db, uint(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to load permissions")

		return handler.Internal(c)
	}

	return c.JSON(perms)
}
