// Package group provides the admin CRUD surface for user groups and their
// memberships.
package group

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	groupctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/group"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for group management.
	Path = "/admin/group"

	// RouteByID addresses a single group.
	RouteByID = Path + "/:id"

	// RouteMembers addresses a group's membership list.
	RouteMembers = Path + "/:id/members"
)

// formInput is the create/update request body.
type formInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// membersInput is the membership replace request body.
type membersInput struct {
	UserIDs []uint64 `json:"user_ids"`
}

// Service provides CRUD operations for groups.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. All group management is administrator only.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	admin := auth.RequireAdministrator(authService)

	app.Get(Path, admin, s.List)
	app.Get(RouteByID, admin, s.Get)
	app.Post(Path, admin, s.Create)
	app.Put(RouteByID, admin, s.Update)
	app.Delete(RouteByID, admin, s.Delete)
	app.Get(RouteMembers, admin, s.ListMembers)
	app.Put(RouteMembers, admin, s.ReplaceMembers)

	return nil
}

// List returns all groups.
func (s *Service) List(c *fiber.Ctx) error {
	groups, err := groupctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load groups")

		return handler.Internal(c)
	}

	return c.JSON(groups)
}

// Get returns a single group.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	g, err := groupctl.GetByID(s.db, uint(id))
	if err != nil {
		if errors.Is(err, groupctl.ErrGroupNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load group")

		return handler.Internal(c)
	}

	return c.JSON(g)
}

// Create adds a group.
func (s *Service) Create(c *fiber.Ctx) error {
	input := new(formInput)
	if err := c.BodyParser(input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	g, err := groupctl.Create(s.db, input.Name, input.Description)
	if err != nil {
		log.Error().Err(err).Msg("failed to create group")

		return handler.Error(c, fiber.StatusConflict, "failed to create group (name must be unique)")
	}

	return c.Status(fiber.StatusCreated).JSON(g)
}

// Update edits a group.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	input := new(formInput)
	if err := c.BodyParser(input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	g, err := groupctl.Update(s.db, uint(id), input.Name, input.Description)
	if err != nil {
		if errors.Is(err, groupctl.ErrGroupNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to update group")

		return handler.Error(c, fiber.StatusConflict, "failed to update group (name must be unique)")
	}

	return c.JSON(g)
}

// Delete removes a group. Memberships and permission grants cascade.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	if err := groupctl.Delete(s.db, uint(id)); err != nil {
		if errors.Is(err, groupctl.ErrGroupNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to delete group")

		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// ListMembers returns the users belonging to a group.
func (s *Service) ListMembers(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	users, err := groupctl.Members(s.db, uint(id))
	if err != nil {
		if errors.Is(err, groupctl.ErrGroupNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load group members")

		return handler.Internal(c)
	}

	return c.JSON(users)
}

// ReplaceMembers swaps the full membership list in one transaction.
func (s *Service) ReplaceMembers(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	input := new(membersInput)
	if err := c.BodyParser(input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := groupctl.ReplaceMembers(s.db, uint(id), input.UserIDs); err != nil {
		if errors.Is(err, groupctl.ErrGroupNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to replace group members")

		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"status": "updated"})
}
