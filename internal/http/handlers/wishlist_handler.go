package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/domain"
	applog "unimart/internal/log"
	"unimart/internal/services"
	"unimart/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(ensureSID(c))
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load wishlist"})
	}
	return render(c, "wishlist", fiber.Map{"Items": items})
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("listingId"))
	if !ok {
		return c.Status(400).SendString("missing listingId")
	}
	err := h.Wish.Add(ensureSID(c), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c, "This item is no longer available")
	case err != nil:
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"listing": id})
		return c.Status(500).SendString("Could not save item")
	}
	applog.Audit(c, "wishlist.save", map[string]any{"listing": id})
	return c.Redirect("/product/" + id)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("listingId"))
	if !ok {
		return c.Status(400).SendString("missing listingId")
	}
	if err := h.Wish.Remove(ensureSID(c), id); err != nil {
		applog.Error(c, "wishlist.unsave.fail", err, map[string]any{"listing": id})
		return c.Status(500).SendString("Could not remove item")
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"listing": id})
	return c.Redirect("/wishlist")
}

func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	if err := h.Wish.Clear(ensureSID(c)); err != nil {
		applog.Error(c, "wishlist.clear.fail", err, nil)
		return c.Status(500).SendString("Could not clear wishlist")
	}
	applog.Audit(c, "wishlist.clear", nil)
	return c.Redirect("/wishlist")
}
