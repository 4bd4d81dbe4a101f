package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/user-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/user-auth-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Home          *handlers.HomeHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UsersHandler
	Authenticator *auth.Authenticator
	UserAdmins    *auth.RoleGate
	Gatherer      prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes. Soft identity extraction runs for every
// route; the user endpoints add the strict gate and the role gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Use(cfg.Authenticator.Soft())

	app.Get("/", cfg.Home.Index)
	app.Get("/protected", cfg.Home.Protected)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh-token", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	users := app.Group("/users", cfg.Authenticator.Strict(), cfg.UserAdmins.Require())
	users.Get("/", cfg.Users.List)
	users.Get("/role/:role", cfg.Users.ListByRole)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
}
