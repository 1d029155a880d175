package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/starwars-backend/internal/config"
	"github.com/ignatzorin/starwars-backend/internal/http/handlers"
	"github.com/ignatzorin/starwars-backend/internal/http/middleware"
)

// Handlers собирает все хэндлеры, которые регистрирует роутер.
// SeedHandler может быть nil, тогда /seed не регистрируется.
type Handlers struct {
	Users     *handlers.UserHandler
	Catalog   *handlers.CatalogHandler
	Favorites *handlers.FavoriteHandler
	Health    *handlers.HealthHandler
	Seed      *handlers.SeedHandler
}

func SetupRouter(cfg *config.Config, h Handlers, metrics *middleware.Metrics) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	if metrics != nil {
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	if h.Health != nil {
		r.GET("/health", h.Health.Health)
	}
	r.GET("/hello", handlers.Hello)
	r.POST("/hello", handlers.Hello)

	if h.Seed != nil && cfg.IsDevelopment() {
		r.POST("/seed", h.Seed.Seed)
	}

	r.GET("/users", h.Users.ListUsers)
	r.POST("/users/favorites", h.Favorites.ListUserFavorites)

	r.GET("/people", h.Catalog.ListCharacters)
	r.GET("/people/:id", h.Catalog.GetCharacter)
	r.GET("/planets", h.Catalog.ListPlanets)
	r.GET("/planets/:id", h.Catalog.GetPlanet)

	// Избранное
	favorite := r.Group("/favorite")
	{
		favorite.POST("/planet/:id", h.Favorites.AddFavoritePlanet)
		favorite.DELETE("/planet/:id", h.Favorites.RemoveFavoritePlanet)
		favorite.POST("/people/:id", h.Favorites.AddFavoriteCharacter)
		favorite.DELETE("/people/:id", h.Favorites.RemoveFavoriteCharacter)
	}

	return r
}
