package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/starwars-backend/internal/dto"
	"github.com/ignatzorin/starwars-backend/internal/http/handlers/common"
	"github.com/ignatzorin/starwars-backend/internal/models"
	"github.com/ignatzorin/starwars-backend/internal/service"
)

type FavoriteHandler struct {
	svc *service.FavoriteService
}

func NewFavoriteHandler(s *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: s}
}

type favoriteOp func(ctx context.Context, userID, targetID int64) ([]models.Favorite, error)

// ListUserFavorites POST /users/favorites
func (h *FavoriteHandler) ListUserFavorites(c *gin.Context) {
	var req dto.UserFavoritesRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	favorites, err := h.svc.ListFavoritesForUser(c.Request.Context(), *req.UserID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FavoritesResponse{Message: "Here are all your favorites", Favorites: favorites})
}

// AddFavoritePlanet POST /favorite/planet/:id
func (h *FavoriteHandler) AddFavoritePlanet(c *gin.Context) {
	h.mutate(c, h.svc.AddFavoritePlanet, "Planet successfully added to your favorites, here is the new list")
}

// AddFavoriteCharacter POST /favorite/people/:id
func (h *FavoriteHandler) AddFavoriteCharacter(c *gin.Context) {
	h.mutate(c, h.svc.AddFavoriteCharacter, "Character successfully added to your favorites, here is the new list")
}

// RemoveFavoritePlanet DELETE /favorite/planet/:id
func (h *FavoriteHandler) RemoveFavoritePlanet(c *gin.Context) {
	h.mutate(c, h.svc.RemoveFavoritePlanet, "Planet successfully deleted from your favorites, here is the new list")
}

// RemoveFavoriteCharacter DELETE /favorite/people/:id
func (h *FavoriteHandler) RemoveFavoriteCharacter(c *gin.Context) {
	h.mutate(c, h.svc.RemoveFavoriteCharacter, "Character successfully deleted from your favorites, here is the new list")
}

// mutate разбирает id из пути и user_id из тела, вызывает op и отдаёт новый список.
func (h *FavoriteHandler) mutate(c *gin.Context, op favoriteOp, successMsg string) {
	targetID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.UserFavoritesRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	favorites, err := op(c.Request.Context(), *req.UserID, targetID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FavoritesResponse{Message: successMsg, Favorites: favorites})
}
