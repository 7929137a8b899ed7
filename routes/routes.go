package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salesdash/handlers"
	"salesdash/middleware"
)

const loginPath = "/login"

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handlers, jwtSecret string) {
	app.Get("/healthz", h.HandleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- Dashboard page ---
	app.Get(loginPath, h.HandleLoginPage)
	app.Get("/", middleware.PageAuth(jwtSecret, loginPath), h.HandleDashboard)

	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	api.Post("/auth/login", h.HandleLogin)

	// --- Data Routes ---
	guard := middleware.JWTMiddleware(jwtSecret)
	api.Get("/options", guard, middleware.ViewerRequired, h.HandleGetOptions)
	api.Get("/summary", guard, middleware.ViewerRequired, h.HandleGetSummary)
	api.Get("/records", guard, middleware.ViewerRequired, h.HandleListRecords)
	api.Get("/charts/product-line.svg", guard, middleware.ViewerRequired, h.HandleProductLineChart)
	api.Get("/charts/hourly.svg", guard, middleware.ViewerRequired, h.HandleHourlyChart)

	// --- Gemini Routes ---
	api.Post("/insights", guard, middleware.ViewerRequired, h.HandleInsights)
}
