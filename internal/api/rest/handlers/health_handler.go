package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Banner текст корневого маршрута
const Banner = "NICE Proxy API running 🚀"

// Root отдает текстовый баннер
func Root(c *gin.Context) {
	c.String(http.StatusOK, Banner)
}

// HealthCheck обработчик для проверки работоспособности сервиса
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
