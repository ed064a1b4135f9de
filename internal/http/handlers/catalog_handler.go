package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/log"
	"unimart/internal/query"
	"unimart/internal/services"
	"unimart/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Verify  *services.VerificationService
	Ticker  *services.ActivityTicker
}

var sortOptions = []struct{ Key, Label string }{
	{"", "Featured"},
	{query.SortPriceLowHigh, "Price: Low to High"},
	{query.SortPriceHighLow, "Price: High to Low"},
	{query.SortRating, "Top Rated"},
	{query.SortNewest, "Newest"},
}

var errSearch = errors.New("search text must be at most 80 printable characters")

// specFrom reads the filter state from the URL. When the search text is unusable the rest of the
// spec is still returned, with SearchText cleared, alongside errSearch.
func specFrom(c *fiber.Ctx) (query.Spec, error) {
	v, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "query"})
		return query.Spec{}, nil
	}
	spec := query.SpecFromValues(v)
	q, ok := validate.Search(spec.SearchText)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "search", "len": len(spec.SearchText)})
		spec.SearchText = ""
		return spec, errSearch
	}
	spec.SearchText = q
	return spec, nil
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	return c.Redirect("/products")
}

// List renders the catalog page. The page state lives entirely in the URL, so reloading or sharing
// the link reproduces the same result.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	spec, err := specFrom(c)
	all := h.Catalog.All()
	data := fiber.Map{
		"Total":    len(all),
		"Facets":   query.FacetsOf(all),
		"Sorts":    sortOptions,
		"Activity": h.Ticker.Recent(3),
		"Spec":     spec,
	}
	if err != nil {
		data["Count"] = 0
		data["Err"] = "Search text is too long or contains unsupported characters"
		c.Status(fiber.StatusBadRequest)
		return render(c, "products", data)
	}
	listings := query.Apply(all, spec)
	data["Listings"], data["Count"] = listings, len(listings)
	return render(c, "products", data)
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "listing"})
		return notFound(c, "This item is no longer available")
	}
	l, found := h.Catalog.ByID(id)
	if !found {
		return notFound(c, "This item is no longer available")
	}
	return render(c, "product", fiber.Map{"P": l, "Gallery": l.Gallery()})
}

// ToggleBadges is the form version of the verification switch in the page header.
func (h *CatalogHandler) ToggleBadges(c *fiber.Ctx) error {
	on := h.Verify.Toggle(ensureSID(c))
	log.Audit(c, "verification.toggle", map[string]any{"enabled": on})
	return c.Redirect(safeNext(c.FormValue("back")))
}
