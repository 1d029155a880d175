package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/starwars-backend/internal/dto"
	"github.com/ignatzorin/starwars-backend/internal/logger"
	"github.com/ignatzorin/starwars-backend/internal/pkg/apperror"
)

const internalErrorMessage = "internal server error"

// ErrorHandler обрабатывает ошибки централизованно.
// Хэндлер кладёт ошибку через c.Error, здесь она превращается в ответ.
// Внутренние ошибки маскируются, клиент видит только сообщение AppError.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		statusCode := http.StatusInternalServerError
		message := internalErrorMessage

		if appErr, ok := apperror.As(err); ok && appErr.Code != apperror.ErrCodeInternal {
			statusCode = appErr.HTTPStatus
			message = appErr.Message
		}

		entry := logger.FromContext(c.Request.Context()).WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": statusCode,
		})
		if statusCode >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Warn("request rejected")
		}

		// Ответ мог уже уйти, тогда только логируем.
		if c.Writer.Written() {
			return
		}
		c.JSON(statusCode, dto.MessageResponse{Message: message})
	}
}
