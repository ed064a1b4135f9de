package handlers

import (
	"github.com/gofiber/fiber/v2"

	"unimart/internal/domain"
	applog "unimart/internal/log"
	"unimart/internal/services"
)

// ProfileHandler shows the logged-in student, what they are selling and what they saved.
type ProfileHandler struct {
	Catalog *services.CatalogService
	Wish    *services.WishlistService
}

// Profile is the page and API view of one session.
type Profile struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Department string           `json:"department,omitempty"`
	Year       string           `json:"year,omitempty"`
	Listings   []domain.Listing `json:"listings"`
	Saved      []domain.Listing `json:"saved"`
}

func (h *ProfileHandler) load(c *fiber.Ctx) (Profile, error) {
	u := currentUser(c)
	saved, err := h.Wish.List(profileOf(c))
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Name: u.Name, Email: u.Email, Department: u.Department, Year: u.Year,
		Listings: h.Catalog.BySeller(u.Name),
		Saved:    saved,
	}, nil
}

func (h *ProfileHandler) Page(c *fiber.Ctx) error {
	p, err := h.load(c)
	if err != nil {
		applog.Error(c, "profile.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your profile"})
	}
	return render(c, "profile", fiber.Map{"Title": "My Profile", "Profile": p})
}

func (h *ProfileHandler) API(c *fiber.Ctx) error {
	p, err := h.load(c)
	if err != nil {
		applog.Error(c, "api.profile.load.fail", err, nil)
		return apiError(c, fiber.StatusInternalServerError, "could not load profile")
	}
	return c.JSON(p)
}
