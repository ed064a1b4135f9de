package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/domain"
	"unimart/internal/log"
	"unimart/internal/services"
	"unimart/internal/validate"
)

// APIHandler serves the JSON surface under /api/v1.
type APIHandler struct {
	Catalog *services.CatalogService
	Sell    *services.SellService
	Auth    *services.AuthService
	Chat    *services.ChatService
	Verify  *services.VerificationService
	Ticker  *services.ActivityTicker
}

func apiError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func (h *APIHandler) Listings(c *fiber.Ctx) error {
	spec, err := specFrom(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	listings := h.Catalog.Query(spec)
	return c.JSON(fiber.Map{"listings": listings, "count": len(listings), "spec": spec})
}

func (h *APIHandler) Listing(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, domain.ErrNotFound.Error())
	}
	l, found := h.Catalog.ByID(id)
	if !found {
		return apiError(c, fiber.StatusNotFound, domain.ErrNotFound.Error())
	}
	return c.JSON(l)
}

func (h *APIHandler) Facets(c *fiber.Ctx) error {
	return c.JSON(h.Catalog.Facets())
}

// listingBody accepts price as a JSON number or a string, the way the Sell form sends it.
type listingBody struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         json.RawMessage `json:"price"`
	Category      string          `json:"category"`
	Condition     string          `json:"condition"`
	Subject       string          `json:"subject"`
	Location      string          `json:"location"`
	Image         string          `json:"image"`
	UseBlockchain bool            `json:"useBlockchain"`
	Rating        *float64        `json:"rating"`
}

func (b listingBody) input() domain.ListingInput {
	price := string(bytes.TrimSpace(b.Price))
	if strings.HasPrefix(price, `"`) {
		var s string
		if json.Unmarshal(b.Price, &s) == nil {
			price = s
		}
	}
	if price == "null" {
		price = ""
	}
	return domain.ListingInput{
		Title: b.Title, Description: b.Description, Price: price,
		Category: b.Category, Condition: b.Condition, Subject: b.Subject,
		Location: b.Location, Image: b.Image, UseBlockchain: b.UseBlockchain, Rating: b.Rating,
	}
}

func (h *APIHandler) CreateListing(c *fiber.Ctx) error {
	var body listingBody
	if err := c.BodyParser(&body); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		return apiError(c, fiber.StatusBadRequest, "malformed listing")
	}
	l, err := h.Sell.Create(profileOf(c), body.input())
	var fe *validate.FieldErrors
	switch {
	case errors.Is(err, domain.ErrLoginRequired):
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	case errors.As(err, &fe):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": domain.ErrInvalidListing.Error(), "fields": *fe})
	case err != nil:
		log.Error(c, "api.listing.create.fail", err, nil)
		return apiError(c, fiber.StatusInternalServerError, "could not store listing")
	}
	log.Audit(c, "listing.create", map[string]any{"id": l.ID, "verified": l.IsBlockchainVerified})
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *APIHandler) Session(c *fiber.Ctx) error {
	u := currentUser(c)
	return c.JSON(fiber.Map{"loggedIn": u != nil, "user": u})
}

func (h *APIHandler) Greeting(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"reply": h.Chat.Greeting()})
}

func (h *APIHandler) ChatReply(c *fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		return apiError(c, fiber.StatusBadRequest, "text is required")
	}
	if len(body.Text) > 500 {
		body.Text = body.Text[:500]
	}
	return c.JSON(fiber.Map{"reply": h.Chat.Reply(body.Text)})
}

func (h *APIHandler) Verification(c *fiber.Ctx) error {
	sid := profileOf(c)
	return c.JSON(fiber.Map{"enabled": sid != "" && h.Verify.Enabled(sid)})
}

func (h *APIHandler) ToggleVerification(c *fiber.Ctx) error {
	on := h.Verify.Toggle(ensureSID(c))
	log.Audit(c, "verification.toggle", map[string]any{"enabled": on})
	return c.JSON(fiber.Map{"enabled": on})
}

func (h *APIHandler) Activity(c *fiber.Ctx) error {
	n := c.QueryInt("n", 5)
	return c.JSON(fiber.Map{"activity": h.Ticker.Recent(n)})
}
