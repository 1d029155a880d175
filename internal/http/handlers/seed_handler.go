package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/starwars-backend/internal/http/handlers/common"
	"github.com/ignatzorin/starwars-backend/internal/service"
)

type Seeder interface {
	Seed(ctx context.Context) (*service.SeedResult, error)
}

// SeedHandler наполняет справочные таблицы, доступен только в development.
type SeedHandler struct {
	seeder Seeder
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seeder Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// SeedResponse представляет ответ на запрос генерации данных.
type SeedResponse struct {
	Message  string              `json:"message"`
	Inserted *service.SeedResult `json:"inserted"`
}

// Seed POST /seed
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, SeedResponse{
		Message:  "Seed data generated successfully",
		Inserted: result,
	})
}
