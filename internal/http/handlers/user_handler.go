package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/starwars-backend/internal/dto"
	"github.com/ignatzorin/starwars-backend/internal/http/handlers/common"
	"github.com/ignatzorin/starwars-backend/internal/models"
)

type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type UserHandler struct {
	users UserLister
}

func NewUserHandler(users UserLister) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UsersResponse{Message: "Here are all your users", Users: users})
}
