package metrics

import (
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки outcome
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// CustomerMetrics интерфейс для доменных метрик прокси
type CustomerMetrics interface {
	IncValidation(outcome string)
	IncAdjustment(outcome string)
	IncTokenRequest(outcome string)
	IncEventPublish(outcome string)
}

type customerMetrics struct {
	log           *logger.Logger
	validations   *prometheus.CounterVec
	adjustments   *prometheus.CounterVec
	tokenRequests *prometheus.CounterVec
	eventsPublish *prometheus.CounterVec
}

// NewCustomerMetrics создает новые доменные метрики
func NewCustomerMetrics(registry *prometheus.Registry, log *logger.Logger) CustomerMetrics {
	validations := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_validations_total",
			Help: "The total number of customer validation attempts by outcome",
		},
		[]string{"outcome"},
	)

	adjustments := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_adjustments_total",
			Help: "The total number of customer adjustments by outcome",
		},
		[]string{"outcome"},
	)

	tokenRequests := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nice_token_requests_total",
			Help: "The total number of relayed token requests by outcome",
		},
		[]string{"outcome"},
	)

	eventsPublish := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_events_published_total",
			Help: "The total number of customer events handed to the broker by outcome",
		},
		[]string{"outcome"},
	)

	return &customerMetrics{
		log:           log,
		validations:   validations,
		adjustments:   adjustments,
		tokenRequests: tokenRequests,
		eventsPublish: eventsPublish,
	}
}

// IncValidation увеличивает счетчик проверок клиента
func (m *customerMetrics) IncValidation(outcome string) {
	m.validations.WithLabelValues(outcome).Inc()
}

// IncAdjustment увеличивает счетчик корректировок
func (m *customerMetrics) IncAdjustment(outcome string) {
	m.adjustments.WithLabelValues(outcome).Inc()
}

// IncTokenRequest увеличивает счетчик запросов токена
func (m *customerMetrics) IncTokenRequest(outcome string) {
	m.tokenRequests.WithLabelValues(outcome).Inc()
}

// IncEventPublish увеличивает счетчик публикаций событий
func (m *customerMetrics) IncEventPublish(outcome string) {
	m.eventsPublish.WithLabelValues(outcome).Inc()
}
