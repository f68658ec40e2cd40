// Package record provides the editorial surface for federation records.
// Mutations of cleared content republish the affected public record tables;
// an update that moves a record between tables republishes both.
package record

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	recordctl "github.com/swimfed-admin/swimfed-admin/internal/db/controller/record"
	"github.com/swimfed-admin/swimfed-admin/internal/edgecache"
	"github.com/swimfed-admin/swimfed-admin/internal/notify"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the base path for record management.
	Path = "/record"

	// RouteApprovers lists who can approve records.
	RouteApprovers = Path + "/approvers"

	// RouteByID addresses a single record.
	RouteByID = Path + "/:id"

	// RouteApprove clears a record for public display.
	RouteApprove = Path + "/:id/approve"
)

// formInput is the create/update request body.
type formInput struct {
	Category   int       `json:"category" validate:"gte=0"`
	Poolsize   int       `json:"poolsize" validate:"gte=0"`
	Sex        int       `json:"sex" validate:"gte=0"`
	Event      string    `json:"event" validate:"required,max=100"`
	HolderName string    `json:"holder_name" validate:"max=100"`
	Time       string    `json:"time" validate:"max=20"`
	MeetName   string    `json:"meet_name" validate:"max=200"`
	RecordDate time.Time `json:"record_date"`
	Valid      bool      `json:"valid"`
}

// Service provides editorial operations for records.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	publisher   edgecache.Publisher
	mailer      notify.Mailer
	validator   *validator.Validate
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

	app.Get(RouteApprovers,
		auth.RequireCapability(authService, auth.LinkRecord, auth.ActionSubmit), s.Approvers)
	app.Get(Path,
		auth.RequireCapability(authService, auth.LinkRecord, auth.ActionView), s.List)
	app.Get(RouteByID,
		auth.RequireCapability(authService, auth.LinkRecord, auth.ActionView), s.Get)
	app.Post(Path,
		auth.RequireCapability(authService, auth.LinkRecord, auth.ActionSubmit), s.Create)
	app.Put(RouteByID,
		auth.RequireCapability(authService, auth.LinkRecord, auth.ActionRevise), s.Update)
	app.Post(RouteApprove,
		auth.RequireCapability(authService, auth.LinkRecord, auth.ActionApprove), s.Approve)
	app.Delete(RouteByID,
		auth.RequireCapability(authService, auth.LinkRecord, auth.ActionExclude), s.Delete)

	return nil
}

func fields(input *formInput) recordctl.Fields {
	return recordctl.Fields{
		Category:   input.Category,
		Poolsize:   input.Poolsize,
		Sex:        input.Sex,
		Event:      input.Event,
		HolderName: input.HolderName,
		Time:       input.Time,
		MeetName:   input.MeetName,
		RecordDate: input.RecordDate,
		Valid:      input.Valid,
	}
}

// List returns all records, unapproved ones included.
func (s *Service) List(c *fiber.Ctx) error {
	items, err := recordctl.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load records")

		return handler.Internal(c)
	}

	return c.JSON(items)
}

// Get returns a single record.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := recordctl.GetByID(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, recordctl.ErrRecordNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to load record")

		return handler.Internal(c)
	}

	return c.JSON(item)
}

// Create submits a record and pings the approvers. The record starts
// unapproved, so no table republish happens here.
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

	item, err := recordctl.Create(s.db, userID, fields(input))
	if err != nil {
		log.Error().Err(err).Msg("failed to create record")

		return handler.Internal(c)
	}

	if approvers, aerr := s.authService.Approvers(auth.LinkRecord); aerr == nil {
		notify.RequestApproval(c.Context(), s.mailer, approvers, auth.LinkRecord, item.Event)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update revises a record. The table it sat in before the update and the
// table it sits in now are both republished, so a partition move never
// leaves a stale entry behind.
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

	item, before, err := recordctl.Update(s.db, userID, uint64(id), fields(input))
	if err != nil {
		if errors.Is(err, recordctl.ErrRecordNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to update record")

		return handler.Internal(c)
	}

	after := recordctl.PartitionOf(item)

	edgecache.RepublishRecord(c.Context(), s.db, s.publisher, before)
	if after != before {
		edgecache.RepublishRecord(c.Context(), s.db, s.publisher, after)
	}

	return c.JSON(item)
}

// Approve clears a record for public display and republishes its table.
func (s *Service) Approve(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return handler.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	item, err := recordctl.Approve(s.db, userID, uint64(id))
	if err != nil {
		if errors.Is(err, recordctl.ErrRecordNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to approve record")

		return handler.Internal(c)
	}

	edgecache.RepublishRecord(c.Context(), s.db, s.publisher, recordctl.PartitionOf(item))

	return c.JSON(item)
}

// Delete removes a record and republishes the table it vacated.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return handler.BadRequest(c, "invalid id")
	}

	part, err := recordctl.Delete(s.db, uint64(id))
	if err != nil {
		if errors.Is(err, recordctl.ErrRecordNotFound) {
			return handler.NotFound(c)
		}

		log.Error().Err(err).Msg("failed to delete record")

		return handler.Internal(c)
	}

	edgecache.RepublishRecord(c.Context(), s.db, s.publisher, part)

	return c.JSON(fiber.Map{"status": "deleted"})
}

// Approvers returns the users who can approve records.
func (s *Service) Approvers(c *fiber.Ctx) error {
	approvers, err := s.authService.Approvers(auth.LinkRecord)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve approvers")

		return handler.Internal(c)
	}

	return c.JSON(approvers)
}
