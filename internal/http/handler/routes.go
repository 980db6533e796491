package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"potensidesa/internal/config"
	"potensidesa/internal/http/middleware"
	"potensidesa/internal/marketing"
	"potensidesa/internal/service"
)

// HealthCheckFunc pings one dependency.
type HealthCheckFunc func(ctx context.Context) error

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Checks      map[string]HealthCheckFunc
	Upload      service.UploadService
	Investments service.InvestmentService
	Dashboard   service.DashboardService
	Auth        service.AuthService
	AuthConfig  config.AuthConfig
	Metrics     *middleware.PrometheusMiddleware
	UploadLimit *middleware.RateLimiter
	Landing     marketing.Page
	Log         *zap.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	app.Get("/health", HealthCheck(d.Checks, log))
	app.Get("/healthz", LivenessProbe())

	upload := []fiber.Handler{}
	if d.UploadLimit != nil {
		if d.Metrics != nil {
			d.UploadLimit.OnLimited = func(*fiber.Ctx) { d.Metrics.RecordUpload(middleware.UploadLimited) }
		}
		upload = append(upload, d.UploadLimit.Handler())
	}
	var recorder UploadRecorder
	if d.Metrics != nil {
		recorder = d.Metrics
	}
	upload = append(upload, UploadImage(d.Upload, recorder, log))
	app.Post("/api/upload", upload...)

	pages := app.Group("", middleware.Session(middleware.SessionOptions{
		Resolver:   d.Auth,
		CookieName: d.AuthConfig.CookieName,
		Timeout:    d.AuthConfig.ResolveTimeout(),
		Log:        log,
	}))

	pages.Get("/", Home(d.Landing))
	pages.Get("/login", LoginPage())
	pages.Post("/login", Login(d.Auth, d.AuthConfig, log))
	pages.Post("/logout", Logout(d.Auth, d.AuthConfig, log))

	dash := pages.Group("/dashboard", middleware.Guard(middleware.GuardOptions{
		LoginPath: "/login",
		OnLoading: LoadingPage(),
	}))
	dash.Get("/", Dashboard(d.Dashboard))
	dash.Get("/approvals", middleware.RequireAdmin(), Approvals(d.Dashboard))
	dash.Post("/approvals/:id/approve", middleware.RequireAdmin(), ReviewLocation(d.Dashboard, true, log))
	dash.Post("/approvals/:id/reject", middleware.RequireAdmin(), ReviewLocation(d.Dashboard, false, log))
	dash.Get("/locations/new", LocationFormPage(d.Dashboard))
	dash.Post("/locations/new", SubmitLocation(d.Dashboard, log))
	dash.Get("/investments", ListInvestments(d.Investments))
	dash.Get("/investments/form", InvestmentFormPage(d.Investments, d.Dashboard, log))
	dash.Post("/investments/form", SaveInvestment(d.Investments, d.Dashboard, log))
	dash.Post("/investments/:id/delete", DeleteInvestment(d.Investments))
}

// HealthCheck pings every dependency and reports 503 when any of them fails.
//
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(checks map[string]HealthCheckFunc, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				healthy = false
				log.Warn("health_check_failed", zap.String("dependency", name), zap.Error(err))
			}
		}
		if !healthy {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process serves requests.
//
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
