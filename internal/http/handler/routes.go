package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"pdfdesk/docs"
	"pdfdesk/internal/http/middleware"
	"pdfdesk/internal/service"
)

// RegisterOpsRoutes attaches the endpoints both apps share:
// /health, /healthz, /metrics and the swagger UI. db may be nil.
func RegisterOpsRoutes(app *fiber.App, db *sql.DB, g prometheus.Gatherer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", Metrics(g))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})
}

// RegisterConverterRoutes attaches the upload form of the converter app.
func RegisterConverterRoutes(app *fiber.App, svc service.ConversionService) {
	app.Get("/", ConverterIndex())
	app.Post("/", middleware.NoStore(), ConvertUpload(svc))
}

// NotesRoutes are the collaborators of the notes app's HTTP surface.
type NotesRoutes struct {
	Sessions      *session.Store
	Notes         service.NotesService
	Subscriptions service.SubscriptionService
	// ConfirmCheckouts enables /subscribe/success; it needs a subscription store.
	ConfirmCheckouts bool
	Log              zerolog.Logger
}

// RegisterNotesRoutes attaches the upload form and subscription endpoints of the notes app.
func RegisterNotesRoutes(app *fiber.App, r NotesRoutes) {
	app.Get("/", NotesIndex())
	app.Post("/", middleware.NoStore(), NotesUpload(r.Sessions, r.Notes))

	app.Post("/subscribe", Subscribe(r.Sessions, r.Subscriptions, r.Log))
	if r.ConfirmCheckouts {
		app.Get("/subscribe/success", SubscribeSuccess(r.Sessions, r.Subscriptions, r.Log))
	}
	app.Get("/subscribe/cancel", SubscribeCancel())
}
