package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"catalogview/internal/config"
	"catalogview/internal/http/handlers"
	applog "catalogview/internal/log"
	"catalogview/internal/repos"
	"catalogview/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
			log.SetOutput(out)
		}
	}
	applog.Setup(cfg.LogLevel, out)

	// The reference API is optional; without it the page talks to API_BASE_URL only.
	var db *sqlx.DB
	if cfg.ServeAPI {
		db, err = repos.OpenDB(cfg.DBDSN)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
	}

	// Templates & app
	engine := html.NewFileSystem(web.Templates(), ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			// The page calls the API over loopback for every action; the API has its own limit.
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/api/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "CSRFToken",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))

	// ---------- Static assets ----------
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static(), MaxAge: 3600}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	// Page
	app.Get("/", deps.PageHandler.Home)
	app.Post("/products/load", deps.PageHandler.Load)
	app.Post("/products", deps.PageHandler.Add)
	app.Post("/products/:id/delete", deps.PageHandler.Delete)

	// API
	if cfg.ServeAPI {
		api := app.Group("/api", handlers.APILimiter(300, time.Minute))
		api.Get("/categories", deps.CategoryHandler.List)
		api.Get("/products", deps.ProductHandler.List)
		api.Get("/products/:id", deps.ProductHandler.Get)
		api.Post("/products", deps.ProductHandler.Create)
		api.Delete("/products/:id", deps.ProductHandler.Delete)
	}

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(handlers.NotFound)

	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Error(nil, "server.listen.fail", err, nil)
	}
}
