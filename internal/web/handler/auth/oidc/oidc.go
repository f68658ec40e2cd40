// Package oidc implements the social sign-in flow against the configured
// identity provider.
package oidc

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/auth"
	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler"
	"github.com/swimfed-admin/swimfed-admin/internal/web/handler/login"
	"github.com/swimfed-admin/swimfed-admin/internal/web/session"
)

const (
	// Path is the base path of the social sign-in flow.
	Path = "/auth/oidc"

	// CallbackPath is the provider redirect target.
	CallbackPath = Path + "/callback"

	// stateCookie carries the anti-forgery state between the two legs.
	stateCookie = "oidc_state"

	// stateCookieMaxAge limits how long a pending sign-in stays valid.
	stateCookieMaxAge = 600
)

// Service is the OIDC handler service.
type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	provider *auth.OIDCProvider
}

// Handler is the OIDC handler.
var Handler = Service{}

// Init initializes the OIDC handler. When social sign-in is disabled the
// routes are registered but answer 404.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, provider *auth.OIDCProvider) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.db = db
	s.provider = provider

	app.Get(Path, s.Begin)
	app.Get(CallbackPath, s.Callback)

	return nil
}

// Begin redirects the browser to the identity provider.
func (s *Service) Begin(c *fiber.Ctx) error {
	if s.provider == nil {
		return handler.NotFound(c)
	}

	state, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate state token")

		return handler.Internal(c)
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		MaxAge:   stateCookieMaxAge,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(s.provider.GetAuthURL(state))
}

// Callback finishes the sign-in, creating the user on first contact.
func (s *Service) Callback(c *fiber.Ctx) error {
	if s.provider == nil {
		return handler.NotFound(c)
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookie) {
		return handler.BadRequest(c, "state mismatch")
	}

	c.ClearCookie(stateCookie)

	code := c.Query("code")
	if code == "" {
		return handler.BadRequest(c, "missing authorization code")
	}

	user, err := s.provider.HandleCallback(c.Context(), code)
	if err != nil {
		if errors.Is(err, auth.ErrUserAccountDisabled) {
			return handler.Error(c, fiber.StatusForbidden, "account is disabled")
		}

		log.Error().Err(err).Msg("oidc callback failed")

		return handler.Error(c, fiber.StatusUnauthorized, "sign-in failed")
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

	c.Cookie(&fiber.Cookie{
		Name:     login.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/dashboard")
}
