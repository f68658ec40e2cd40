// Package news provides the editorial surface for news items: submission,
// revision, approval and exclusion, gated per capability.
package news

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	newsctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/news"
	"github.com/swimfed-admin/swimfed-admin/internal/notify"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for news management.
	Path = "/news"

	// RouteApprovers lists who can approve news items.
	RouteApprovers = Path + "/approvers"

	// RouteByID addresses a single news item.
	RouteByID = Path + "/:id"

	// RouteApprove clears a news item for public display.
	RouteApprove = Path + "/:id/approve"
)

// formInput is the create/update request body.
type formInput struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Body        string    `json:"body"`
	PublishDate time.Time `json:"publish_date" validate:"required"`
}

// Service provides editorial operations for news items.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	mailer      notify.Mailer
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes with per-action capability checks.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, mailer notify.Mailer) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService
	s.mailer = mailer
	s.validator = validator.New()
	s.sanitizer = bluemonday.UGCPolicy()

	app.Get(RouteApprovers,
		auth.RequireCapability(authService, auth.LinkNews, auth.ActionSubmit), s.Approvers)
	app.Get(Path,
		auth.RequireCapability(authService, auth.LinkNews, auth.ActionView), s.List)
	app.Get(RouteByID,
		auth.RequireCapability(authService, auth.LinkNews, auth.ActionView), s.Get)
	app.Post(Path,
		auth.RequireCapability(authService, auth.LinkNews, auth.ActionSubmit), s.Create)
	app.Put(RouteByID,
		auth.RequireCapability(authService, auth.LinkNews, auth.ActionRevise), s.Update)
	app.Post(RouteApprove,
		auth.RequireCapability(authService, auth.LinkNews, auth.ActionApprove), s.Approve)
	app.Delete(RouteByID,
		auth.RequireCapability(authService, auth.LinkNews, auth.ActionExclude), s.Delete)

	return nil
}

// List returns all news items, unapproved ones included.
func (s *Service) List(c *fiber.Ctx) error {
	items, err := newsctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load news")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Get returns a single news item.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := newsctl.GetByID(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, newsctl.ErrNewsNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load news item")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Create submits a news item and pings the approvers.
func (s *Service) Create(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := new(formInput)
	if err := c.BodyParser(input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	item, err := newsctl.Create(s.db, userID, input.Title, s.sanitizer.Sanitize(input.Body), input.PublishDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to create news item")

		return handler.Internal(c)
	}

	if approvers, aerr := s.authService.Approvers(auth.LinkNews); aerr == nil {
		notify.RequestApproval(c.Context(), s.mailer, approvers, auth.LinkNews, item.Title)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update revises a news item. Any approval on it is withdrawn.
func (s *Service) Update(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

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

	item, err := newsctl.Update(s.db, userID, uint64(id), input.Title, s.sanitizer.Sanitize(input.Body), input.PublishDate)
	if err != nil {
		if errors.Is(err, newsctl.ErrNewsNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to update news item")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Approve clears a news item for public display.
func (s *Service) Approve(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := newsctl.Approve(s.db, userID, uint64(id))
	if err != nil {
		if errors.Is(err, newsctl.ErrNewsNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to approve news item")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Delete removes a news item.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	if err := newsctl.Delete(s.db, uint64(id)); err != nil {
		if errors.Is(err, newsctl.ErrNewsNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to delete news item")

		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// Approvers returns the users who can approve news items.
func (s *Service) Approvers(c *fiber.Ctx) error {
	approvers, err := s.authService.Approvers(auth.LinkNews)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve approvers")

		return handler.Internal(c)
	}

	return c.JSON(approvers)
}
