// Package contact takes public contact-form submissions. Messages are
// stored first and the office mailbox is notified best-effort, so a mail
// outage never loses a submission.
package contact

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
	"github.com/swimfed-admin/swimfed-admin/internal/notify"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
)

const (
	// Path is the path to the contact intake endpoint.
	Path = "/contact"
)

// formInput is the contact submission request body.
type formInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"max=200"`
	Body    string `json:"body" validate:"required,max=10000"`
}

// Service takes contact submissions.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	mailer    notify.Mailer
	validator *validator.Validate
	sanitizer *bluemonday.Policy
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the contact route. No authentication applies.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, mailer notify.Mailer) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db
	s.mailer = mailer
	s.validator = validator.New()
	s.sanitizer = bluemonday.StrictPolicy()

	app.Post(Path, s.Post)

	return nil
}

// Post stores a submission and forwards it to the office mailbox.
func (s *Service) Post(c *fiber.Ctx) error {
	input := new(formInput)
	if err := c.BodyParser(input); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	msg := models.ContactMessage{
		Name:    s.sanitizer.Sanitize(input.Name),
		Email:   input.Email,
		Subject: s.sanitizer.Sanitize(input.Subject),
		Body:    s.sanitizer.Sanitize(input.Body),
	}

	if err := s.db.Create(&msg).Error; err != nil {
		log.Error().Err(err).Msg("failed to store contact message")

		return handler.Internal(c)
	}

	if s.mailer != nil && s.cfg.SMTP.OfficeAddress != "" {
		subject := fmt.Sprintf("contact form: %s", msg.Subject)
		body := fmt.Sprintf("From: %s <%s>\r\n\r\n%s\r\n", msg.Name, msg.Email, msg.Body)

		if err := s.mailer.Send(c.Context(), []string{s.cfg.SMTP.OfficeAddress}, subject, body); err != nil {
			log.Warn().Err(err).Msg("contact notification failed")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "received"})
}
