package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/api/http/handlers"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Products   *handlers.ProductsHandler
	Orders     *handlers.OrdersHandler
	Users      *handlers.UsersHandler
	Cart       *handlers.CartHandler
	Categories *handlers.CategoriesHandler
	Gate       *auth.Gate
}

// RegisterRoutes wires HTTP routes. Every protected route declares its
// allowed-role set here, once; handlers never repeat the check. The sets are
// flat and explicit: where both manager and admin may act, both are listed.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.Gate.RequireRoles(domain.RoleManager, domain.RoleAdmin), cfg.Products.Create)
	products.Put("/:id", cfg.Gate.RequireRoles(domain.RoleManager, domain.RoleAdmin), cfg.Products.Update)
	products.Delete("/:id", cfg.Gate.RequireRoles(domain.RoleManager, domain.RoleAdmin), cfg.Products.Delete)

	orders := api.Group("/orders")
	orders.Post("/", cfg.Gate.RequireRoles(domain.RoleCustomer, domain.RoleManager, domain.RoleAdmin), cfg.Orders.Place)
	orders.Get("/mine", cfg.Gate.RequireRoles(domain.RoleCustomer, domain.RoleManager, domain.RoleAdmin), cfg.Orders.ListMine)
	orders.Get("/", cfg.Gate.RequireRoles(domain.RoleManager, domain.RoleAdmin), cfg.Orders.List)
	orders.Put("/:id/status", cfg.Gate.RequireRoles(domain.RoleManager, domain.RoleAdmin), cfg.Orders.UpdateStatus)

	users := api.Group("/users")
	users.Get("/", cfg.Gate.RequireRoles(domain.RoleManager, domain.RoleAdmin), cfg.Users.List)
	users.Put("/:id/role", cfg.Gate.RequireRoles(domain.RoleAdmin), cfg.Users.UpdateRole)

	cart := api.Group("/cart", cfg.Gate.RequireRoles(domain.RoleCustomer, domain.RoleManager, domain.RoleAdmin))
	cart.Get("/", cfg.Cart.Get)
	cart.Post("/items", cfg.Cart.Add)
	cart.Put("/items/:productId", cfg.Cart.UpdateQuantity)
	cart.Delete("/items/:productId", cfg.Cart.Remove)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Post("/", cfg.Gate.RequireRoles(domain.RoleManager, domain.RoleAdmin), cfg.Categories.Create)
}
