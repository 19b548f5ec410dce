package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID берет X-Request-ID из запроса или генерирует новый и возвращает его в ответе
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom возвращает идентификатор текущего запроса
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
