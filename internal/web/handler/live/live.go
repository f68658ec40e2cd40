// Package live provides the editorial surface for live-stream entries.
// Every mutation of cleared content republishes the single public live
// listing; switching a stream on air additionally pushes an announcement.
package live

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	livectl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/live"
	"github.com/swimfed-admin/swimfed-admin/internal/edgecache"
	"github.com/swimfed-admin/swimfed-admin/internal/notify"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for live-stream management.
	Path = "/live"

	// RouteApprovers lists who can approve live entries.
	RouteApprovers = Path + "/approvers"

	// RouteReorder normalizes display orders back to a dense sequence.
	RouteReorder = Path + "/reorder"

	// RouteByID addresses a single live entry.
	RouteByID = Path + "/:id"

	// RouteApprove clears a live entry for public display.
	RouteApprove = Path + "/:id/approve"

	// RouteOnAir toggles the on-air flag.
	RouteOnAir = Path + "/:id/onair"
)

// formInput is the create/update request body.
type formInput struct {
	Title    string    `json:"title" validate:"required,max=200"`
	URL      string    `json:"url" validate:"required,url,max=500"`
	FromDate time.Time `json:"from_date" validate:"required"`
	OnAir    bool      `json:"on_air"`
	Finished bool      `json:"finished"`
	Order    int       `json:"order" validate:"gte=0"`
}

// onAirInput is the on-air toggle request body.
type onAirInput struct {
	OnAir bool `json:"on_air"`
}

// Service provides editorial operations for live entries.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	publisher   edgecache.Publisher
	mailer      notify.Mailer
	pusher      notify.Pusher
	validator   *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes with per-action capability checks.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service,
	publisher edgecache.Publisher, mailer notify.Mailer, pusher notify.Pusher,
) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService
	s.publisher = publisher
	s.mailer = mailer
	s.pusher = pusher
	s.validator = validator.New()

	app.Get(RouteApprovers,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionSubmit), s.Approvers)
	app.Get(Path,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionView), s.List)
	app.Post(RouteReorder,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionRevise), s.Reorder)
	app.Get(RouteByID,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionView), s.Get)
	app.Post(Path,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionSubmit), s.Create)
	app.Put(RouteByID,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionRevise), s.Update)
	app.Post(RouteApprove,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionApprove), s.Approve)
	app.Post(RouteOnAir,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionRevise), s.OnAir)
	app.Delete(RouteByID,
		auth.RequireCapability(authService, auth.LinkLive, auth.ActionExclude), s.Delete)

	return nil
}

// List returns all live entries, unapproved ones included.
func (s *Service) List(c *fiber.Ctx) error {
	items, err := livectl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load live entries")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Get returns a single live entry.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := livectl.GetByID(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, livectl.ErrLiveNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load live entry")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Create submits a live entry and pings the approvers.
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

	item, err := livectl.Create(s.db, userID, livectl.Fields{
		Title:    input.Title,
		URL:      input.URL,
		FromDate: input.FromDate,
		OnAir:    input.OnAir,
		Finished: input.Finished,
		Order:    input.Order,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create live entry")

		return handler.Internal(c)
	}

	if approvers, aerr := s.authService.Approvers(auth.LinkLive); aerr == nil {
		notify.RequestApproval(c.Context(), s.mailer, approvers, auth.LinkLive, item.Title)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update revises a live entry and republishes the public listing.
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

	item, err := livectl.Update(s.db, userID, uint64(id), livectl.Fields{
		Title:    input.Title,
		URL:      input.URL,
		FromDate: input.FromDate,
		OnAir:    input.OnAir,
		Finished: input.Finished,
		Order:    input.Order,
	})
	if err != nil {
		if errors.Is(err, livectl.ErrLiveNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to update live entry")

		return handler.Internal(c)
	}

	edgecache.RepublishLive(c.Context(), s.db, s.publisher)

	return c.JSON(item)
}

// Approve clears a live entry and republishes the public listing.
func (s *Service) Approve(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := livectl.Approve(s.db, userID, uint64(id))
	if err != nil {
		if errors.Is(err, livectl.ErrLiveNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to approve live entry")

		return handler.Internal(c)
	}

	edgecache.RepublishLive(c.Context(), s.db, s.publisher)

	return c.JSON(item)
}

// OnAir toggles the on-air flag. Switching a stream off air marks it
// finished. Going on air pushes an announcement, best-effort.
func (s *Service) OnAir(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	input := new(onAirInput)
	if err := c.BodyParser(input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	item, err := livectl.SetOnAir(s.db, uint64(id), input.OnAir)
	if err != nil {
		if errors.Is(err, livectl.ErrLiveNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to toggle on-air flag")

		return handler.Internal(c)
	}

	edgecache.RepublishLive(c.Context(), s.db, s.publisher)

	if input.OnAir {
		notify.AnnounceOnAir(c.Context(), s.pusher, item.Title, item.URL)
	}

	return c.JSON(item)
}

// Reorder rewrites display orders to a dense 1..N sequence and republishes
// the public listing.
func (s *Service) Reorder(c *fiber.Ctx) error {
	if err := livectl.Reorder(s.db); err != nil {
		log.Error().Err(err).Msg("failed to reorder live entries")

		return handler.Internal(c)
	}

	edgecache.RepublishLive(c.Context(), s.db, s.publisher)

	items, err := livectl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load live entries")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Delete removes a live entry and republishes the public listing.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	if err := livectl.Delete(s.db, uint64(id)); err != nil {
		if errors.Is(err, livectl.ErrLiveNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to delete live entry")

		return handler.Internal(c)
	}

	edgecache.RepublishLive(c.Context(), s.db, s.publisher)

	return c.JSON(fiber.Map{"status": "deleted"})
}

// Approvers returns the users who can approve live entries.
func (s *Service) Approvers(c *fiber.Ctx) error {
	approvers, err := s.authService.Approvers(auth.LinkLive)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve approvers")

		return handler.Internal(c)
	}

	return c.JSON(approvers)
}
