package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"unimart/internal/domain"
	applog "unimart/internal/log"
	"unimart/internal/services"
)

const sidCookie = "sid"

// ensureSID returns the profile id, issuing a new cookie on first contact.
func ensureSID(c *fiber.Ctx) string {
	if sid, ok := c.Locals(localProfile).(string); ok && sid != "" {
		return sid
	}
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	c.Locals(localProfile, sid)
	return sid
}

// profileOf returns the profile id without issuing a cookie; "" means a first-time visitor.
func profileOf(c *fiber.Ctx) string {
	if sid, ok := c.Locals(localProfile).(string); ok {
		return sid
	}
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err != nil {
		return ""
	}
	return sid
}

// WithSession attaches the profile, the logged-in user and the badge preference to the context.
func WithSession(auth *services.AuthService, verify *services.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := profileOf(c); sid != "" {
			c.Locals(localProfile, sid)
			if u := auth.CurrentUser(sid); u != nil {
				c.Locals(localUser, u)
			}
			c.Locals(localBadges, verify.Enabled(sid))
		}
		return c.Next()
	}
}

// RequireUser lets logged-in profiles through. Pages redirect to the login form and come back
// afterwards; API calls get a JSON 401.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) != nil {
			return c.Next()
		}
		applog.Security(c, "access.denied.anonymous", nil)
		if isAPI(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": domain.ErrLoginRequired.Error()})
		}
		return c.Redirect("/login?next=" + c.Path())
	}
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\\r\n") {
		return "/products"
	}
	return next
}
