package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tramites-portal/internal/api/http/handlers"
	"github.com/spec-kit/tramites-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tramites       *handlers.TramitesHandler
	Funcionarios   *handlers.FuncionariosHandler
	Tipos          *handlers.TiposHandler
	Usuarios       *handlers.UsuariosHandler
	Sesiones       *handlers.SesionesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/provider-login", cfg.Auth.ProviderLogin)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	// Catalog source for the public request form.
	app.Get("/tipos-tramite/activos", cfg.Tipos.ListActive)

	tramites := app.Group("/tramites", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tramites.Get("/", cfg.Tramites.List)
	tramites.Post("/", cfg.Tramites.Create)
	tramites.Get("/export", cfg.Tramites.Export)
	tramites.Get("/:id", cfg.Tramites.Get)
	tramites.Put("/:id", auth.RequireAdmin(), cfg.Tramites.Review)
	tramites.Delete("/:id", auth.RequireAdmin(), cfg.Tramites.Delete)

	funcionarios := app.Group("/funcionarios", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	funcionarios.Get("/", cfg.Funcionarios.List)
	funcionarios.Post("/", cfg.Funcionarios.Create)
	funcionarios.Get("/export", cfg.Funcionarios.Export)
	funcionarios.Put("/:id", cfg.Funcionarios.Update)
	funcionarios.Delete("/:id", cfg.Funcionarios.Delete)

	tipos := app.Group("/tipos-tramite", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	tipos.Get("/", cfg.Tipos.List)
	tipos.Post("/", cfg.Tipos.Create)
	tipos.Get("/export", cfg.Tipos.Export)
	tipos.Put("/:id", cfg.Tipos.Update)
	tipos.Delete("/:id", cfg.Tipos.Delete)

	usuarios := app.Group("/usuarios", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	usuarios.Get("/", cfg.Usuarios.List)
	usuarios.Get("/export", cfg.Usuarios.Export)

	sesiones := app.Group("/sesiones", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	sesiones.Get("/", cfg.Sesiones.List)
	sesiones.Get("/export", cfg.Sesiones.Export)
}
