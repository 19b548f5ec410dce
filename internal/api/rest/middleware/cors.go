package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var allowedMethods = strings.Join([]string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodPost,
	http.MethodDelete,
}, ",")

// CORS разрешает кросс-доменные запросы с любого источника.
// Preflight-запросы завершаются ответом 204.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Methods", allowedMethods)
		if reqHeaders := c.GetHeader("Access-Control-Request-Headers"); reqHeaders != "" {
			c.Header("Access-Control-Allow-Headers", reqHeaders)
			c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
		}
		c.Header("Content-Length", "0")
		c.AbortWithStatus(http.StatusNoContent)
	}
}
