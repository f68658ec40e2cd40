// Package meet provides the editorial surface for meet announcements.
package meet

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
	meetctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/meet"
	"github.com/swimfed-admin/swimfed-admin/internal/notify"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for meet management.
	Path = "/meet"

	// RouteApprovers lists who can approve meets.
	RouteApprovers = Path + "/approvers"

	// RouteByID addresses a single meet.
	RouteByID = Path + "/:id"

	// RouteApprove clears a meet for public display.
	RouteApprove = Path + "/:id/approve"
)

// formInput is the create/update request body.
type formInput struct {
	Title         string     `json:"title" validate:"required,max=200"`
	Venue         string     `json:"venue" validate:"max=200"`
	FromDate      time.Time  `json:"from_date" validate:"required"`
	ToDate        time.Time  `json:"to_date"`
	EntryDeadline *time.Time `json:"entry_deadline"`
	Body          string     `json:"body"`
}

// Service provides editorial operations for meets.
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
		auth.RequireCapability(authService, auth.LinkMeet, auth.ActionSubmit), s.Approvers)
	app.Get(Path,
		auth.RequireCapability(authService, auth.LinkMeet, auth.ActionView), s.List)
	app.Get(RouteByID,
		auth.RequireCapability(authService, auth.LinkMeet, auth.ActionView), s.Get)
	app.Post(Path,
		auth.RequireCapability(authService, auth.LinkMeet, auth.ActionSubmit), s.Create)
	app.Put(RouteByID,
		auth.RequireCapability(authService, auth.LinkMeet, auth.ActionRevise), s.Update)
	app.Post(RouteApprove,
		auth.RequireCapability(authService, auth.LinkMeet, auth.ActionApprove), s.Approve)
	app.Delete(RouteByID,
		auth.RequireCapability(authService, auth.LinkMeet, auth.ActionExclude), s.Delete)

	return nil
}

func (s *Service) fields(input *formInput) meetctl.Fields {
	return meetctl.Fields{
		Title:         input.Title,
		Venue:         input.Venue,
		FromDate:      input.FromDate,
		ToDate:        input.ToDate,
		EntryDeadline: input.EntryDeadline,
		Body:          s.sanitizer.Sanitize(input.Body),
	}
}

// List returns all meets, unapproved ones included.
func (s *Service) List(c *fiber.Ctx) error {
	items, err := meetctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load meets")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Get returns a single meet.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := meetctl.GetByID(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, meetctl.ErrMeetNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load meet")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Create submits a meet and pings the approvers.
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

	item, err := meetctl.Create(s.db, userID, s.fields(input))
	if err != nil {
		log.Error().Err(err).Msg("failed to create meet")

		return handler.Internal(c)
	}

	if approvers, aerr := s.authService.Approvers(auth.LinkMeet); aerr == nil {
		notify.RequestApproval(c.Context(), s.mailer, approvers, auth.LinkMeet, item.Title)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update revises a meet. Any approval on it is withdrawn.
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

	item, err := meetctl.Update(s.db, userID, uint64(id), s.fields(input))
	if err != nil {
		if errors.Is(err, meetctl.ErrMeetNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to update meet")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Approve clears a meet for public display.
func (s *Service) Approve(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := meetctl.Approve(s.db, userID, uint64(id))
	if err != nil {
		if errors.Is(err, meetctl.ErrMeetNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to approve meet")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Delete removes a meet.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	if err := meetctl.Delete(s.db, uint64(id)); err != nil {
		if errors.Is(err, meetctl.ErrMeetNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to delete meet")

		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// Approvers returns the users who can approve meets.
func (s *Service) Approvers(c *fiber.Ctx) error {
	approvers, err := s.authService.Approvers(auth.LinkMeet)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve approvers")

		return handler.Internal(c)
	}

	return c.JSON(approvers)
}
