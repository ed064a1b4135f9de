package handlers

import (
	"github.com/gofiber/fiber/v2"

	"unimart/internal/domain"
)

// Locals keys set by WithSession.
const (
	localUser    = "user"
	localProfile = "profile"
	localBadges  = "badges"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := currentUser(c); u != nil {
		data["User"] = u
	}
	data["ShowBadges"], _ = c.Locals(localBadges).(bool)
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// fall back to the cookie so forms never carry an empty hidden field
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

func currentUser(c *fiber.Ctx) *domain.Session {
	u, _ := c.Locals(localUser).(*domain.Session)
	return u
}
