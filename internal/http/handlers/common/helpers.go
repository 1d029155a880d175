package common

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/starwars-backend/internal/pkg/apperror"
)

// ParseIDParam читает целочисленный id из параметра пути.
func ParseIDParam(c *gin.Context, paramName string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("parameter " + paramName + " must be a positive integer")
	}
	return id, nil
}

// BindJSON разбирает тело запроса, ошибка разбора превращается в 400.
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "invalid request body")
	}
	return nil
}

// Fail передаёт ошибку в middleware.ErrorHandler, который сформирует ответ.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
