// Package seminar provides the editorial surface for seminars. The public
// listing is partitioned by fiscal year, so mutations of cleared content
// republish the affected year; moving a seminar across the April 1 boundary
// republishes both years.
package seminar

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
	seminarctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/seminar"
	"github.com/swimfed-admin/swimfed-admin/internal/edgecache"
	"github.com/swimfed-admin/swimfed-admin/internal/notify"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for seminar management.
	Path = "/seminar"

	// RouteApprovers lists who can approve seminars.
	RouteApprovers = Path + "/approvers"

	// RouteByID addresses a single seminar.
	RouteByID = Path + "/:id"

	// RouteApprove clears a seminar for public display.
	RouteApprove = Path + "/:id/approve"
)

// formInput is the create/update request body.
type formInput struct {
	Title    string    `json:"title" validate:"required,max=200"`
	Venue    string    `json:"venue" validate:"max=200"`
	FromDate time.Time `json:"from_date" validate:"required"`
	ToDate   time.Time `json:"to_date"`
	Capacity int       `json:"capacity" validate:"gte=0"`
	Body     string    `json:"body"`
}

// Service provides editorial operations for seminars.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	publisher   edgecache.Publisher
	mailer      notify.Mailer
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes with per-action capability checks.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service,
	publisher edgecache.Publisher, mailer notify.Mailer,
) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService
	s.publisher = publisher
	s.mailer = mailer
	s.validator = validator.New()
	s.sanitizer = bluemonday.UGCPolicy()

	app.Get(RouteApprovers,
		auth.RequireCapability(authService, auth.LinkSeminar, auth.ActionSubmit), s.Approvers)
	app.Get(Path,
		auth.RequireCapability(authService, auth.LinkSeminar, auth.ActionView), s.List)
	app.Get(RouteByID,
		auth.RequireCapability(authService, auth.LinkSeminar, auth.ActionView), s.Get)
	app.Post(Path,
		auth.RequireCapability(authService, auth.LinkSeminar, auth.ActionSubmit), s.Create)
	app.Put(RouteByID,
		auth.RequireCapability(authService, auth.LinkSeminar, auth.ActionRevise), s.Update)
	app.Post(RouteApprove,
		auth.RequireCapability(authService, auth.LinkSeminar, auth.ActionApprove), s.Approve)
	app.Delete(RouteByID,
		auth.RequireCapability(authService, auth.LinkSeminar, auth.ActionExclude), s.Delete)

	return nil
}

func (s *Service) fields(input *formInput) seminarctl.Fields {
	return seminarctl.Fields{
		Title:    input.Title,
		Venue:    input.Venue,
		FromDate: input.FromDate,
		ToDate:   input.ToDate,
		Capacity: input.Capacity,
		Body:     s.sanitizer.Sanitize(input.Body),
	}
}

// List returns all seminars, unapproved ones included.
func (s *Service) List(c *fiber.Ctx) error {
	items, err := seminarctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load seminars")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Get returns a single seminar.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := seminarctl.GetByID(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, seminarctl.ErrSeminarNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load seminar")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Create submits a seminar and pings the approvers.
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

	item, err := seminarctl.Create(s.db, userID, s.fields(input))
	if err != nil {
		log.Error().Err(err).Msg("failed to create seminar")

		return handler.Internal(c)
	}

	if approvers, aerr := s.authService.Approvers(auth.LinkSeminar); aerr == nil {
		notify.RequestApproval(c.Context(), s.mailer, approvers, auth.LinkSeminar, item.Title)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update revises a seminar and republishes the fiscal year it sat in
// before the update plus the one it sits in now.
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

	item, beforeYear, err := seminarctl.Update(s.db, userID, uint64(id), s.fields(input))
	if err != nil {
		if errors.Is(err, seminarctl.ErrSeminarNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to update seminar")

		return handler.Internal(c)
	}

	afterYear := seminarctl.FiscalYearOf(item.FromDate)

	edgecache.RepublishSeminar(c.Context(), s.db, s.publisher, beforeYear)
	if afterYear != beforeYear {
		edgecache.RepublishSeminar(c.Context(), s.db, s.publisher, afterYear)
	}

	return c.JSON(item)
}

// Approve clears a seminar for public display and republishes its year.
func (s *Service) Approve(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := seminarctl.Approve(s.db, userID, uint64(id))
	if err != nil {
		if errors.Is(err, seminarctl.ErrSeminarNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to approve seminar")

		return handler.Internal(c)
	}

	edgecache.RepublishSeminar(c.Context(), s.db, s.publisher, seminarctl.FiscalYearOf(item.FromDate))

	return c.JSON(item)
}

// Delete removes a seminar and republishes the year it vacated.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	year, err := seminarctl.Delete(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, seminarctl.ErrSeminarNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to delete seminar")

		return handler.Internal(c)
	}

	edgecache.RepublishSeminar(c.Context(), s.db, s.publisher, year)

	return c.JSON(fiber.Map{"status": "deleted"})
}

// Approvers returns the users who can approve seminars.
func (s *Service) Approvers(c *fiber.Ctx) error {
	approvers, err := s.authService.Approvers(auth.LinkSeminar)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve approvers")

		return handler.Internal(c)
	}

	return c.JSON(approvers)
}
