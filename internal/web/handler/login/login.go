package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
	"github.com/swimfed-admin/swimfed-admin/internal/web/session"
)

const (
	// Path is the path to the login endpoint.
	Path = "/login"

	// CookieName is the session cookie name.
	CookieName = "session"
)

// credentials is the expected login request body.
type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service is the login handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	local     *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.local = auth.NewLocalProvider(db)
	s.validator = validator.New()

	app.Post(Path, s.Post)

	return nil
}

// Post handles the login submission.
func (s *Service) Post(c *fiber.Ctx) error {
	creds := new(credentials)

	if err := c.BodyParser(creds); err != nil {
		return handler.BadRequest(c, ErrInvalidFormData.Error())
	}

	if err := s.validator.Struct(creds); err != nil {
		return handler.BadRequest(c, ErrInvalidFormData.Error())
	}

	user, err := s.local.Authenticate(creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAccountDisabled) {
			return handler.Error(c, fiber.StatusForbidden, "account is disabled")
		}

		return handler.Error(c, fiber.StatusUnauthorized, ErrInvalidCredentials.Error())
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")

		return handler.Internal(c)
	}

	userSession := &session.Data{User: *user}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return handler.Internal(c)
	}

	cookieSettings := &fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.JSON(fiber.Map{
		"id":           user.ID,
		"name":         user.Name,
		"display_name": user.DisplayName,
		"role":         user.Role,
	})
}
