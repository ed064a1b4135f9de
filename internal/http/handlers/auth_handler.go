package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/domain"
	"unimart/internal/log"
	"unimart/internal/services"
)

var (
	departments = []string{"Computer", "Electronics", "Mechanical", "Civil", "Chemical", "Information Technology"}
	years       = []string{"1", "2", "3", "4"}
)

type AuthHandler struct {
	Auth   *services.AuthService
	Campus string
}

func (h *AuthHandler) page(c *fiber.Ctx, status int, tab, msg string) error {
	c.Status(status)
	return render(c, "login", fiber.Map{
		"Err": msg, "Tab": tab, "Next": safeNext(c.Query("next", c.FormValue("next"))),
		"Campus": h.Campus, "Departments": departments, "Years": years,
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return c.Redirect(safeNext(c.Query("next")))
	}
	return h.page(c, fiber.StatusOK, "login", "")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	sess, err := h.Auth.Login(sid, domain.Credentials{Email: email, Password: c.FormValue("password")})
	if err != nil {
		if services.IsUserError(err) {
			c.Status(fiber.StatusUnauthorized)
			log.Security(c, "auth.login.fail", map[string]any{"email": email})
			return h.page(c, fiber.StatusUnauthorized, "login", err.Error())
		}
		log.Error(c, "auth.login.error", err, nil)
		return h.page(c, fiber.StatusInternalServerError, "login", "Could not sign you in. Please try again.")
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": sess.Email})
	return c.Redirect(safeNext(c.FormValue("next")))
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	sid := ensureSID(c)
	in := domain.SignupInput{
		Name:       c.FormValue("name"),
		Email:      c.FormValue("email"),
		Password:   c.FormValue("password"),
		Department: c.FormValue("department"),
		Year:       c.FormValue("year"),
	}
	sess, err := h.Auth.Signup(sid, in)
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		log.Security(c, "auth.signup.duplicate", map[string]any{"email": in.Email})
		return h.page(c, fiber.StatusConflict, "signup", "An account with this email already exists")
	case services.IsUserError(err):
		log.Info(c, "auth.signup.invalid", map[string]any{"email": in.Email})
		return h.page(c, fiber.StatusBadRequest, "signup", err.Error())
	case err != nil:
		log.Error(c, "auth.signup.error", err, nil)
		return h.page(c, fiber.StatusInternalServerError, "signup", "Could not create your account. Please try again.")
	}
	log.Audit(c, "auth.signup.success", map[string]any{"email": sess.Email, "department": sess.Department})
	return c.Redirect(safeNext(c.FormValue("next")))
}

// Logout drops the session record but keeps the profile cookie, so the wishlist survives.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := profileOf(c)
	if sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			log.Error(c, "auth.logout.fail", err, nil)
		}
	}
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/products")
}
