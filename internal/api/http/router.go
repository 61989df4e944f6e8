package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/funify/funify-api/internal/api/http/handlers"
	"github.com/funify/funify-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Users     *handlers.UsersHandler
	Posts     *handlers.PostsHandler
	Products  *handlers.ProductsHandler
	Campaigns *handlers.CampaignsHandler
	Content   *handlers.ContentHandler
	Gate      *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The gate runs ahead of every route and
// decides public or protected from its route table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	health := app.Group("/health")
	health.Get("/", cfg.Health.Health)
	health.Get("/live", cfg.Health.Live)
	health.Get("/ready", cfg.Health.Ready)
	health.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/github", cfg.Auth.GitHubRedirect)
	authGroup.Get("/github/callback", cfg.Auth.GitHubCallback)
	authGroup.Get("/me", cfg.Auth.Me)

	users := api.Group("/users")
	users.Get("/me", cfg.Users.Me)
	users.Get("/me/campaigns", cfg.Users.MyCampaigns)
	users.Post("/become-creator", cfg.Users.BecomeCreator)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)

	creators := api.Group("/creators")
	creators.Get("/", cfg.Users.ListCreators)
	creators.Get("/:username", cfg.Users.GetCreator)

	posts := api.Group("/posts")
	posts.Get("/", cfg.Posts.List)
	posts.Get("/my-posts", cfg.Posts.Mine)
	posts.Get("/creator/:user_id", cfg.Posts.ByCreator)
	posts.Get("/:id", cfg.Posts.Get)
	posts.Post("/", cfg.Posts.Create)
	posts.Put("/:id", cfg.Posts.Update)
	posts.Delete("/:id", cfg.Posts.Delete)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/meta", cfg.Products.Meta)
	products.Get("/collections", cfg.Products.Collections)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.Products.Create)
	products.Put("/:id", cfg.Products.Update)
	products.Delete("/:id", cfg.Products.Delete)

	campaigns := api.Group("/campaigns")
	campaigns.Get("/", cfg.Campaigns.List)
	campaigns.Get("/:slug", cfg.Campaigns.GetBySlug)
	campaigns.Post("/", cfg.Campaigns.Create)
	campaigns.Put("/:id", cfg.Campaigns.Update)
	campaigns.Delete("/:id", cfg.Campaigns.Delete)

	api.Get("/events", cfg.Content.ListEvents)
	api.Get("/events/:id", cfg.Content.GetEvent)
	api.Get("/articles", cfg.Content.ListArticles)
	api.Get("/articles/:slug", cfg.Content.GetArticle)
	api.Get("/podcasts", cfg.Content.ListPodcasts)
	api.Get("/notifications", cfg.Content.Notifications)
	api.Get("/subscriptions/my-subscribers", cfg.Content.MySubscribers)
}
