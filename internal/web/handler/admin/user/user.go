// Package user provides the admin CRUD surface for member accounts.
package user

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for user management.
	Path = "/admin/user"

	// RouteByID addresses a single user.
	RouteByID = Path + "/:id"
)

// formInput is the create/update request body.
type formInput struct {
	Name        string `json:"name" validate:"required"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role" validate:"required,oneof=administrator member"`
	Active      *bool  `json:"active"`
	Password    string `json:"password"`
}

// Service provides CRUD operations for users.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. All user management is administrator only.
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

	return nil
}

// List returns all accounts ordered by name.
func (s *Service) List(c *fiber.Ctx) error {
	var users []models.User
	if err := s.db.Order("name ASC").Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("failed to load users")

		return handler.Internal(c)
	}

	return c.JSON(users)
}

// Get returns a single account.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load user")

		return handler.Internal(c)
	}

	return c.JSON(user)
}

// Create adds a local account.
func (s *Service) Create(c *fiber.Ctx) error {
	input := new(formInput)
	if err := c.BodyParser(input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	user := models.User{
		Name:        input.Name,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Role:        input.Role,
		Active:      true,
		AuthSource:  models.AuthSourceLocal,
	}

	if input.Active != nil {
		user.Active = *input.Active
	}

	if input.Password != "" {
		user.Password = models.HashPassword(input.Password)
	}

	if err := s.db.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return handler.Error(c, fiber.StatusConflict, "failed to create user (email must be unique)")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Update edits an account. An empty password leaves the stored hash alone.
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

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load user")

		return handler.Internal(c)
	}

	user.Name = input.Name
	user.DisplayName = input.DisplayName
	user.Email = input.Email
	user.Role = input.Role

	if input.Active != nil {
		user.Active = *input.Active
	}

	if input.Password != "" {
		user.Password = models.HashPassword(input.Password)
	}

	if err := s.db.Select("*").Save(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return handler.Error(c, fiber.StatusConflict, "failed to update user (email must be unique)")
	}

	return c.JSON(user)
}

// Delete removes an account. Group rows referencing it cascade.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		log.Error().Err(res.Error).Msg("failed to delete user")

		return handler.Internal(c)
	}

	if res.RowsAffected == 0 {
		return handler.NotFound(c)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
