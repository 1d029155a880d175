package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/starwars-backend/internal/dto"
	"github.com/ignatzorin/starwars-backend/internal/http/handlers/common"
	"github.com/ignatzorin/starwars-backend/internal/models"
	"github.com/ignatzorin/starwars-backend/internal/pkg/apperror"
	"github.com/ignatzorin/starwars-backend/internal/repository"
)

type CharacterCatalog interface {
	List(ctx context.Context) ([]models.Character, error)
	GetByID(ctx context.Context, id int64) (*models.Character, error)
}

type PlanetCatalog interface {
	List(ctx context.Context) ([]models.Planet, error)
	GetByID(ctx context.Context, id int64) (*models.Planet, error)
}

// CatalogHandler отдаёт персонажей и планеты, только чтение.
type CatalogHandler struct {
	characters CharacterCatalog
	planets    PlanetCatalog
}

func NewCatalogHandler(characters CharacterCatalog, planets PlanetCatalog) *CatalogHandler {
	return &CatalogHandler{characters: characters, planets: planets}
}

// ListCharacters GET /people
func (h *CatalogHandler) ListCharacters(c *gin.Context) {
	characters, err := h.characters.List(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CharactersResponse{Message: "Here are all the characters", Characters: characters})
}

// GetCharacter GET /people/:id
func (h *CatalogHandler) GetCharacter(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	character, err := h.characters.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCharacterNotFound) {
			err = apperror.NotFound("Character not found")
		}
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CharacterResponse{Message: "Here is the Character", Person: character})
}

// ListPlanets GET /planets
func (h *CatalogHandler) ListPlanets(c *gin.Context) {
	planets, err := h.planets.List(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PlanetsResponse{Message: "Here are all the planets", Planets: planets})
}

// GetPlanet GET /planets/:id
func (h *CatalogHandler) GetPlanet(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	planet, err := h.planets.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPlanetNotFound) {
			err = apperror.NotFound("Planet not found")
		}
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PlanetResponse{Message: "Here is the planet", Planet: planet})
}
