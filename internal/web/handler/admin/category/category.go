// Package category provides the admin CRUD surface for content categories,
// including the display-order normalization endpoint.
package category

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	categoryctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/category"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for category management.
	Path = "/admin/category"

	// RouteByID addresses a single category.
	RouteByID = Path + "/:id"

	// RouteReorder normalizes display orders back to a dense sequence.
	RouteReorder = Path + "/reorder"
)

// formInput is the create/update request body.
type formInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Link  string `json:"link" validate:"required,max=100"`
	Role  string `json:"role" validate:"omitempty,oneof=administrator member"`
	Order int    `json:"order" validate:"gte=0"`
}

// Service provides CRUD operations for categories.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. All category management is administrator only.
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
	app.Post(RouteReorder, admin, s.Reorder)
	app.Put(RouteByID, admin, s.Update)
	app.Delete(RouteByID, admin, s.Delete)

	return nil
}

// List returns all categories in display sequence.
func (s *Service) List(c *fiber.Ctx) error {
	categories, err := categoryctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load categories")

		return handler.Internal(c)
	}

	return c.JSON(categories)
}

// Get returns a single category.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	cat, err := categoryctl.GetByID(s.db, uint(id))
	if err != nil {
		if errors.Is(err, categoryctl.ErrCategoryNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load category")

		return handler.Internal(c)
	}

	return c.JSON(cat)
}

// Create adds a category at the end of the display sequence.
func (s *Service) Create(c *fiber.Ctx) error {
	input := new(formInput)
	if err := c.BodyParser(input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	cat, err := categoryctl.Create(s.db, input.Name, input.Link, input.Role)
	if err != nil {
		if errors.Is(err, categoryctl.ErrCategoryNameEmpty) {
			return handler.BadRequest(c, err.Error())
		}

		log.Error().Err(err).Msg("failed to create category")

		return handler.Internal(c)
	}

	return c.Status(fiber.StatusCreated).JSON(cat)
}

// Update edits a category, including its manual order value.
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

	cat, err := categoryctl.Update(s.db, uint(id), input.Name, input.Link, input.Role, input.Order)
	if err != nil {
		if errors.Is(err, categoryctl.ErrCategoryNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to update category")

		return handler.Internal(c)
	}

	return c.JSON(cat)
}

// Delete removes a category. Permission grants referencing it cascade.
// Order values of the remaining categories are left alone; a reorder call
// closes the gap.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	if err := categoryctl.Delete(s.db, uint(id)); err != nil {
		if errors.Is(err, categoryctl.ErrCategoryNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to delete category")

		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// Reorder rewrites display orders to a dense 1..N sequence.
func (s *Service) Reorder(c *fiber.Ctx) error {
	if err := categoryctl.Reorder(s.db); err != nil {
		log.Error().Err(err).Msg("failed to reorder categories")

		return handler.Internal(c)
	}

	categories, err := categoryctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load categories")

		return handler.Internal(c)
	}

	return c.JSON(categories)
}
