package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/domain"
	"unimart/internal/log"
	"unimart/internal/services"
	"unimart/internal/validate"
)

// maxImage caps an uploaded photo before it is inlined as a data URL.
const maxImage = 512 << 10

var (
	sellCategories = []string{"Textbooks", "Lab Coats", "Drafting Tools", "Tools", "Electronics", "Notes", "Other"}
	sellConditions = []string{"Like New", "Very Good", "Good", "Fair"}
	sellSubjects   = []string{"Engineering Graphics", "Chemistry", "Physics", "Mathematics", "Workshop",
		"Computer Science", "Electronics", "Mechanical", "Civil", "Other"}
)

type SellHandler struct {
	Sell *services.SellService
}

func sellForm(in domain.ListingInput, errs validate.FieldErrors, msg string) fiber.Map {
	return fiber.Map{
		"Form": in, "Errors": errs, "Err": msg,
		"Categories": sellCategories, "Conditions": sellConditions, "Subjects": sellSubjects,
	}
}

func (h *SellHandler) Form(c *fiber.Ctx) error {
	return render(c, "sell", sellForm(domain.ListingInput{}, nil, ""))
}

func (h *SellHandler) Submit(c *fiber.Ctx) error {
	in := domain.ListingInput{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Price:         c.FormValue("price"),
		Category:      c.FormValue("category"),
		Condition:     c.FormValue("condition"),
		Subject:       c.FormValue("subject"),
		Location:      c.FormValue("location"),
		Image:         strings.TrimSpace(c.FormValue("image")),
		UseBlockchain: c.FormValue("useBlockchain") == "on" || c.FormValue("useBlockchain") == "true",
	}
	if fh, err := c.FormFile("photo"); err == nil {
		dataURL, err := inlineImage(fh.Size, func() (io.ReadCloser, error) { return fh.Open() })
		if err != nil {
			log.Security(c, "sell.upload.reject", map[string]any{"size": fh.Size, "reason": err.Error()})
			return c.Status(fiber.StatusBadRequest).Render("sell", sellForm(in, validate.FieldErrors{"image": err.Error()}, ""))
		}
		in.Image = dataURL
	}

	l, err := h.Sell.Create(ensureSID(c), in)
	var fe *validate.FieldErrors
	switch {
	case errors.Is(err, domain.ErrLoginRequired):
		return c.Redirect("/login?next=/sell")
	case errors.As(err, &fe):
		log.Info(c, "sell.validation.fail", map[string]any{"fields": len(*fe)})
		c.Status(fiber.StatusBadRequest)
		return render(c, "sell", sellForm(in, *fe, ""))
	case err != nil:
		log.Error(c, "sell.create.fail", err, nil)
		c.Status(fiber.StatusInternalServerError)
		return render(c, "sell", sellForm(in, nil, "Could not publish your listing. Please try again."))
	}
	log.Audit(c, "listing.create", map[string]any{"id": l.ID, "verified": l.IsBlockchainVerified})
	return c.Redirect("/product/" + l.ID)
}

var errImage = errors.New("please upload a JPEG, PNG, GIF or WebP image under 512 KB")

func inlineImage(size int64, open func() (io.ReadCloser, error)) (string, error) {
	if size <= 0 || size > maxImage {
		return "", errImage
	}
	f, err := open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, maxImage+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxImage {
		return "", errImage
	}
	ct := http.DetectContentType(b)
	switch ct {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return "", errImage
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
