package rest

import (
	"github.com/Dhoini/nice-proxy/internal/api/rest/handlers"
	"github.com/Dhoini/nice-proxy/internal/api/rest/middleware"
	"github.com/Dhoini/nice-proxy/internal/metrics"
	"github.com/Dhoini/nice-proxy/internal/service"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies зависимости маршрутизатора
type Dependencies struct {
	Customers service.CustomerService
	Tokens    handlers.TokenRelay
	Registry  *prometheus.Registry
	Log       *logger.Logger
}

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	// Подключение middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())
	r.Use(middleware.LoggerMiddleware(deps.Log))
	r.Use(middleware.MetricsMiddleware(metrics.NewHTTPMetrics(deps.Registry)))
	r.Use(gin.Recovery())

	// Проверка работоспособности
	r.GET("/", handlers.Root)
	r.GET("/health", handlers.HealthCheck)

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	// Ретрансляция токена NICE
	tokenHandler := handlers.NewTokenHandler(deps.Tokens, deps.Log)
	r.GET("/token", tokenHandler.GetToken)

	// Клиенты
	customerHandler := handlers.NewCustomerHandler(deps.Customers, deps.Log)
	r.GET("/init-db", customerHandler.InitDB)
	r.GET("/customers", customerHandler.GetCustomers)
	r.GET("/customer/:id", customerHandler.GetCustomer)
	r.POST("/customer/:id/adjust", customerHandler.AdjustCustomer)
	r.POST("/validate-customer", customerHandler.ValidateCustomer)

	return r
}
