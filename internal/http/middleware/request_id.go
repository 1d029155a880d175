package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/starwars-backend/internal/logger"
)

const (
	// RequestIDHeader - заголовок с id запроса для корреляции логов.
	RequestIDHeader = "X-Request-ID"

	// ContextRequestIDKey - ключ id запроса в gin.Context.
	ContextRequestIDKey = "requestID"
)

// RequestID берёт id из заголовка или генерирует новый UUID,
// кладёт его в контекст запроса и возвращает клиенту.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(ContextRequestIDKey, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}
