package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/internal/metrics"
	"github.com/Dhoini/nice-proxy/internal/repository"
	"github.com/Dhoini/nice-proxy/pkg/logger"
)

// DefaultStoreTimeout ограничивает одно обращение к хранилищу, если таймаут не задан
const DefaultStoreTimeout = 5 * time.Second

// CustomerService интерфейс сервиса для работы с клиентами
type CustomerService interface {
	Bootstrap(ctx context.Context) error
	ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error)
	GetCustomer(ctx context.Context, customerID string) (domain.Customer, error)
	ValidateCustomer(ctx context.Context, customerID, lastName string) (domain.Customer, error)
	AdjustCustomer(ctx context.Context, customerID string, adj domain.Adjustment) (domain.CustomerSummary, error)
}

// EventPublisher публикует события об изменении клиентов
type EventPublisher interface {
	PublishCustomerAdjusted(ctx context.Context, customer domain.CustomerSummary, adj domain.Adjustment) error
}

// NopEventPublisher ничего не публикует
type NopEventPublisher struct{}

// PublishCustomerAdjusted реализует EventPublisher
func (NopEventPublisher) PublishCustomerAdjusted(context.Context, domain.CustomerSummary, domain.Adjustment) error {
	return nil
}

type customerService struct {
	repo      repository.CustomerRepository
	publisher EventPublisher
	metrics   metrics.CustomerMetrics
	timeout   time.Duration
	log       *logger.Logger
}

// NewCustomerService создает новый сервис для работы с клиентами
func NewCustomerService(
	repo repository.CustomerRepository,
	publisher EventPublisher,
	m metrics.CustomerMetrics,
	timeout time.Duration,
	log *logger.Logger,
) CustomerService {
	if publisher == nil {
		publisher = NopEventPublisher{}
	}
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &customerService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		timeout:   timeout,
		log:       log,
	}
}

func (s *customerService) Bootstrap(ctx context.Context) error {
	s.log.Debug("Bootstrapping customer store")

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.repo.Bootstrap(ctx)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error) {
	s.log.Debug("Getting all customers")

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.repo.List(ctx)
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (domain.Customer, error) {
	if strings.TrimSpace(customerID) == "" {
		return domain.Customer{}, domain.ErrInvalidInput
	}
	s.log.Debug("Getting customer by customer_id: %s", customerID)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.repo.GetByCustomerID(ctx, customerID)
}

func (s *customerService) ValidateCustomer(ctx context.Context, customerID, lastName string) (domain.Customer, error) {
	customerID = strings.TrimSpace(customerID)
	lastName = strings.TrimSpace(lastName)
	if customerID == "" || lastName == "" {
		s.metrics.IncValidation(metrics.OutcomeInvalid)
		return domain.Customer{}, domain.ErrInvalidInput
	}
	s.log.Debug("Validating customer %s", customerID)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	customer, err := s.repo.GetByCustomerIDAndLastName(ctx, customerID, lastName)
	s.metrics.IncValidation(outcomeOf(err))
	return customer, err
}

func (s *customerService) AdjustCustomer(ctx context.Context, customerID string, adj domain.Adjustment) (domain.CustomerSummary, error) {
	if strings.TrimSpace(customerID) == "" {
		s.metrics.IncAdjustment(metrics.OutcomeInvalid)
		return domain.CustomerSummary{}, domain.ErrInvalidInput
	}
	s.log.Debug("Adjusting customer %s: points %+d, balance %s", customerID, adj.PointsDelta, adj.BalanceDelta.String())

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	customer, err := s.repo.Adjust(storeCtx, customerID, adj)
	s.metrics.IncAdjustment(outcomeOf(err))
	if err != nil {
		return domain.CustomerSummary{}, err
	}

	// Ошибка публикации не отменяет уже примененную корректировку
	if err := s.publisher.PublishCustomerAdjusted(ctx, customer, adj); err != nil {
		s.metrics.IncEventPublish(metrics.OutcomeError)
		s.log.Warnw("Failed to publish customer adjusted event", "customer_id", customerID, "error", err)
	} else {
		s.metrics.IncEventPublish(metrics.OutcomeSuccess)
	}

	return customer, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
