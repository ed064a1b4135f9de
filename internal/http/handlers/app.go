package handlers

import (
	"errors"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"unimart/internal/config"
	applog "unimart/internal/log"
)

// Options tune the middleware stack. Zero values mean production defaults.
type Options struct {
	LoginLimit  int
	APILimit    int
	AccessLog   bool
	ReloadViews bool
}

func rupees(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
}

// imgsrc lets inline uploads through html/template's URL filter; other schemes must be http(s).
func imgsrc(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"), strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		return template.URL(s)
	}
	return ""
}

func views(dir string, reload bool) *html.Engine {
	engine := html.New(dir, ".html")
	engine.Reload(reload)
	engine.AddFunc("rupees", rupees)
	engine.AddFunc("imgsrc", imgsrc)
	engine.AddFunc("selected", func(a, b string) bool { return strings.EqualFold(a, b) })
	return engine
}

// ErrorHandler maps errors to a friendly page or JSON body without leaking internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
		if isAPI(c) {
			return apiError(c, fiber.StatusNotFound, "not found")
		}
		return notFound(c, "Page not found")
	}
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		applog.Security(c, "request.rejected", map[string]any{"code": fe.Code})
		if isAPI(c) {
			return apiError(c, fe.Code, fe.Message)
		}
		return c.Status(fe.Code).SendString(fe.Message)
	}
	// Log and show a friendly message
	applog.Error(c, "server.error", err, nil)
	if isAPI(c) {
		return apiError(c, fiber.StatusInternalServerError, "something went wrong")
	}
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}

// NewApp builds the Fiber app with every middleware and route mounted.
func NewApp(cfg config.Config, d *Deps, opt Options) *fiber.App {
	if opt.LoginLimit == 0 {
		opt.LoginLimit = 5
	}
	if opt.APILimit == 0 {
		opt.APILimit = 120
	}

	app := fiber.New(fiber.Config{
		Views:        views(cfg.TemplatesDir, opt.ReloadViews),
		ErrorHandler: ErrorHandler,
		BodyLimit:    2 << 20,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if opt.AccessLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	app.Use(WithSession(d.Auth, d.Verification))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		Next:           isAPI,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	Routes(app, d, opt)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	return app
}

func Routes(app *fiber.App, d *Deps, opt Options) {
	// Public pages
	app.Get("/", d.CatalogHandler.Home)
	app.Get("/products", d.CatalogHandler.List)
	app.Get("/product", func(c *fiber.Ctx) error { return notFound(c, "This item is no longer available") })
	app.Get("/product/:id", d.CatalogHandler.Detail)
	app.Post("/verification/toggle", d.CatalogHandler.ToggleBadges)

	// Sell
	app.Get("/sell", RequireUser(), d.SellHandler.Form)
	app.Post("/sell", RequireUser(), d.SellHandler.Submit)

	// Wishlist
	wish := app.Group("/wishlist", RequireUser())
	wish.Get("/", d.WishlistHandler.List)
	wish.Post("/", d.WishlistHandler.Save)
	wish.Post("/delete", d.WishlistHandler.Unsave)
	wish.Post("/clear", d.WishlistHandler.Clear)

	// Profile
	app.Get("/profile", RequireUser(), d.ProfileHandler.Page)

	// Auth routes (login throttled)
	authLimit := limiter.New(limiter.Config{
		Max:        opt.LoginLimit,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later.", "Tab": "login"})
		},
	})
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", authLimit, d.AuthHandler.Login)
	app.Post("/signup", authLimit, d.AuthHandler.Signup)
	app.Post("/logout", d.AuthHandler.Logout)

	// API
	api := app.Group("/api/v1", limiter.New(limiter.Config{
		Max:        opt.APILimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.api.hit", nil)
			return apiError(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
		},
	}))
	api.Get("/listings", d.APIHandler.Listings)
	api.Get("/listings/:id", d.APIHandler.Listing)
	api.Post("/listings", RequireUser(), d.APIHandler.CreateListing)
	api.Get("/facets", d.APIHandler.Facets)
	api.Get("/session", d.APIHandler.Session)
	api.Get("/profile", RequireUser(), d.ProfileHandler.API)
	api.Get("/chat", d.APIHandler.Greeting)
	api.Post("/chat", d.APIHandler.ChatReply)
	api.Get("/verification", d.APIHandler.Verification)
	api.Post("/verification/toggle", d.APIHandler.ToggleVerification)
	api.Get("/verification/activity", d.APIHandler.Activity)
	api.Get("/healthz", health)

	app.Get("/healthz", health)
}

func health(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) }
