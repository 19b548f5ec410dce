package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/pkg/logger"
)

// CustomerRepository интерфейс для работы с клиентами
type CustomerRepository interface {
	// Bootstrap создает хранилище при необходимости и вставляет начальный набор клиентов, не трогая существующих
	Bootstrap(ctx context.Context) error
	List(ctx context.Context) ([]domain.CustomerSummary, error)
	GetByCustomerID(ctx context.Context, customerID string) (domain.Customer, error)
	// GetByCustomerIDAndLastName сравнивает фамилию без учета регистра и окружающих пробелов
	GetByCustomerIDAndLastName(ctx context.Context, customerID, lastName string) (domain.Customer, error)
	Adjust(ctx context.Context, customerID string, adj domain.Adjustment) (domain.CustomerSummary, error)
}

// InMemoryCustomerRepository реализация репозитория в памяти
type InMemoryCustomerRepository struct {
	customers map[string]domain.Customer
	mutex     sync.RWMutex
	now       func() time.Time
	log       *logger.Logger
}

// NewInMemoryCustomerRepository создает новый репозиторий клиентов в памяти
func NewInMemoryCustomerRepository(log *logger.Logger) *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{
		customers: make(map[string]domain.Customer),
		now:       time.Now,
		log:       log,
	}
}

// Bootstrap вставляет начальных клиентов, пропуская уже существующие customer_id
func (r *InMemoryCustomerRepository) Bootstrap(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	inserted := 0
	for _, customer := range SeedCustomers() {
		if _, exists := r.customers[customer.CustomerID]; exists {
			continue
		}
		now := r.now()
		customer.CreatedAt = now
		customer.UpdatedAt = now
		r.customers[customer.CustomerID] = customer
		inserted++
	}

	r.log.Debug("In-memory bootstrap inserted %d customers", inserted)
	return nil
}

// List возвращает всех клиентов по возрастанию customer_id
func (r *InMemoryCustomerRepository) List(ctx context.Context) ([]domain.CustomerSummary, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	customers := make([]domain.CustomerSummary, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, customer.CustomerSummary)
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CustomerID < customers[j].CustomerID
	})

	return customers, nil
}

// GetByCustomerID возвращает клиента по customer_id
func (r *InMemoryCustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (domain.Customer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	customer, exists := r.customers[customerID]
	if !exists {
		return domain.Customer{}, domain.ErrNotFound
	}

	return customer, nil
}

// GetByCustomerIDAndLastName возвращает клиента, если совпадают и customer_id, и фамилия
func (r *InMemoryCustomerRepository) GetByCustomerIDAndLastName(ctx context.Context, customerID, lastName string) (domain.Customer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	customer, exists := r.customers[customerID]
	if !exists || !strings.EqualFold(strings.TrimSpace(customer.LastName), strings.TrimSpace(lastName)) {
		return domain.Customer{}, domain.ErrNotFound
	}

	return customer, nil
}

// Adjust применяет корректировку к клиенту
func (r *InMemoryCustomerRepository) Adjust(ctx context.Context, customerID string, adj domain.Adjustment) (domain.CustomerSummary, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, exists := r.customers[customerID]
	if !exists {
		return domain.CustomerSummary{}, domain.ErrNotFound
	}

	existing.CustomerSummary = existing.Apply(adj, r.now())
	r.customers[customerID] = existing

	return existing.CustomerSummary, nil
}
