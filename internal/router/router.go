package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/store-rating-platform/internal/config"
	"github.com/iliyamo/store-rating-platform/internal/handler"
	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/model"
)

// Handlers collects every handler the router wires up. Building it in main
// keeps the repository plumbing out of this package.
type Handlers struct {
	Auth   *handler.AuthHandler
	Store  *handler.StoreHandler
	Rating *handler.RatingHandler
	Owner  *handler.OwnerHandler
	Admin  *handler.AdminHandler
}

// RegisterRoutes registers the unauthenticated routes on the provided Echo
// instance. Currently that is only the health check, used by load balancers
// to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", handler.Health)
}

// RegisterAPI wires the full authenticated surface. Every group below the
// auth endpoints runs JWTAuth first; mutation and dashboard groups then
// pin the exact role they accept — there is no role hierarchy, an ADMIN
// token does not open USER or STORE_OWNER routes.
func RegisterAPI(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	jwt := middleware.JWTAuth(cfg.JWTSecret)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Session endpoints. Register and login mint tokens; the rest require one.
	auth := e.Group("/api/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/change-password", h.Auth.ChangePassword, jwt)
	auth.GET("/me", h.Auth.Me, jwt)

	// Store browsing is open to every authenticated role. The response is
	// cached per caller (it embeds their own rating), so the cache runs
	// after JWTAuth.
	stores := e.Group("/api/stores", jwt, cache)
	stores.GET("", h.Store.ListStores)

	// Rating submission is USER-only.
	ratings := e.Group("/api/ratings", jwt, middleware.RequireRole(model.RoleUser))
	ratings.POST("", h.Rating.SubmitRating)

	// Owner dashboard is STORE_OWNER-only.
	owner := e.Group("/api/owner", jwt, middleware.RequireRole(model.RoleStoreOwner))
	owner.GET("/ratings", h.Owner.Dashboard)

	// Management surface is ADMIN-only.
	admin := e.Group("/api/admin", jwt, middleware.RequireRole(model.RoleAdmin))
	admin.POST("/users", h.Admin.AddUser)
	admin.GET("/users", h.Admin.ListUsers)
	admin.POST("/stores", h.Admin.AddStore)
	admin.GET("/stores", h.Admin.ListStores, cache)
	admin.GET("/metrics", h.Admin.Metrics)
}
