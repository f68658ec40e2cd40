package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/swimfed-admin/swimfed-admin/internal/web/session"
)

// RequireCapability creates Fiber middleware that requires the named action
// on the category with the given link slug.
func RequireCapability(authService *Service, link, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session")
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to read session")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		if sessionData.User.ID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		granted, err := authService.HasCapability(sessionData.User.ID, link, action)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).
				Str("link", link).Str("action", action).
				Msg("failed to check capability")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		if !granted {
			log.Warn().Uint64("user_id", sessionData.User.ID).
				Str("link", link).Str("action", action).
				Msg("user lacks required capability")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		return c.Next()
	}
}

// RequireAdministrator creates Fiber middleware that restricts a route to
// users carrying the administrator role flag.
func RequireAdministrator(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session")
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		if sessionData.User.ID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		if !sessionData.User.IsAdministrator() {
			log.Warn().Uint64("user_id", sessionData.User.ID).
				Msg("user lacks administrator role")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		return c.Next()
	}
}

// CurrentUserID extracts the authenticated user id from the request's
// session cookie. Returns ErrUnauthenticated when no valid session exists.
func CurrentUserID(c *fiber.Ctx) (uint64, error) {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return 0, ErrUnauthenticated
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return 0, ErrUnauthenticated
	}

	if sessionData.User.ID == 0 {
		return 0, ErrUnauthenticated
	}

	return sessionData.User.ID, nil
}
