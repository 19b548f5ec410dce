package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/internal/metrics"
	"github.com/Dhoini/nice-proxy/internal/repository"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo считает обращения к хранилищу
type countingRepo struct {
	repository.CustomerRepository
	calls int
}

func (r *countingRepo) GetByCustomerIDAndLastName(ctx context.Context, customerID, lastName string) (domain.Customer, error) {
	r.calls++
	return r.CustomerRepository.GetByCustomerIDAndLastName(ctx, customerID, lastName)
}

func (r *countingRepo) GetByCustomerID(ctx context.Context, customerID string) (domain.Customer, error) {
	r.calls++
	return r.CustomerRepository.GetByCustomerID(ctx, customerID)
}

type recordingPublisher struct {
	events []domain.CustomerSummary
	err    error
}

func (p *recordingPublisher) PublishCustomerAdjusted(ctx context.Context, customer domain.CustomerSummary, adj domain.Adjustment) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, customer)
	return nil
}

func setupService(t *testing.T, publisher EventPublisher) (CustomerService, *countingRepo) {
	t.Helper()
	log := logger.NewNop()
	mem := repository.NewInMemoryCustomerRepository(log)
	repo := &countingRepo{CustomerRepository: mem}
	svc := NewCustomerService(repo, publisher, metrics.NewCustomerMetrics(prometheus.NewRegistry(), log), time.Second, log)
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc, repo
}

func TestValidateCustomerCaseInsensitive(t *testing.T) {
	svc, _ := setupService(t, nil)

	customer, err := svc.ValidateCustomer(context.Background(), "CUST-1001", "perez")
	require.NoError(t, err)
	assert.Equal(t, "CUST-1001", customer.CustomerID)
	require.NotNil(t, customer.Notes)
	assert.Equal(t, "Prefers Spanish-speaking agents", *customer.Notes)

	customer, err = svc.ValidateCustomer(context.Background(), "  CUST-1001 ", " PEREZ  ")
	require.NoError(t, err)
	assert.Equal(t, "Juan", customer.FirstName)
}

func TestValidateCustomerSameSignalForUnknownAndWrongName(t *testing.T) {
	svc, _ := setupService(t, nil)

	_, unknownErr := svc.ValidateCustomer(context.Background(), "CUST-9999", "Perez")
	_, wrongNameErr := svc.ValidateCustomer(context.Background(), "CUST-1001", "Gomez")

	assert.ErrorIs(t, unknownErr, domain.ErrNotFound)
	assert.ErrorIs(t, wrongNameErr, domain.ErrNotFound)
	assert.Equal(t, unknownErr.Error(), wrongNameErr.Error())
}

func TestValidateCustomerMissingFieldsSkipsStore(t *testing.T) {
	svc, repo := setupService(t, nil)

	cases := []struct{ id, lastName string }{
		{"", "Perez"},
		{"CUST-1001", ""},
		{"   ", "Perez"},
		{"CUST-1001", "\t "},
	}
	for _, c := range cases {
		_, err := svc.ValidateCustomer(context.Background(), c.id, c.lastName)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "id=%q lastName=%q", c.id, c.lastName)
	}
	assert.Zero(t, repo.calls)
}

func TestGetCustomer(t *testing.T) {
	svc, repo := setupService(t, nil)

	_, err := svc.GetCustomer(context.Background(), "UNKNOWN-ID")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetCustomer(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, repo.calls)
}

func TestAdjustCustomerScenario(t *testing.T) {
	publisher := &recordingPublisher{}
	svc, _ := setupService(t, publisher)
	ctx := context.Background()

	before, err := svc.GetCustomer(ctx, "CUST-1002")
	require.NoError(t, err)
	require.Equal(t, int64(120), before.Points)

	after, err := svc.AdjustCustomer(ctx, "CUST-1002", domain.Adjustment{PointsDelta: -20})
	require.NoError(t, err)

	assert.Equal(t, int64(100), after.Points)
	assert.True(t, before.Balance.Equal(after.Balance))
	assert.Equal(t, before.RiskLevel, after.RiskLevel)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.Segment, after.Segment)
	assert.Equal(t, before.Delinquent, after.Delinquent)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "CUST-1002", publisher.events[0].CustomerID)
}

func TestAdjustCustomerIsAdditive(t *testing.T) {
	ctx := context.Background()
	stepwise, _ := setupService(t, nil)
	combined, _ := setupService(t, nil)

	_, err := stepwise.AdjustCustomer(ctx, "CUST-1004", domain.Adjustment{PointsDelta: 30})
	require.NoError(t, err)
	a, err := stepwise.AdjustCustomer(ctx, "CUST-1004", domain.Adjustment{PointsDelta: -1000})
	require.NoError(t, err)

	b, err := combined.AdjustCustomer(ctx, "CUST-1004", domain.Adjustment{PointsDelta: -970})
	require.NoError(t, err)

	assert.Equal(t, b.Points, a.Points)
	assert.Equal(t, int64(10), a.Points)
}

func TestAdjustCustomerPublishFailureDoesNotFail(t *testing.T) {
	svc, _ := setupService(t, &recordingPublisher{err: errors.New("broker down")})

	after, err := svc.AdjustCustomer(context.Background(), "CUST-1001", domain.Adjustment{PointsDelta: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(251), after.Points)
}

func TestAdjustCustomerNotFound(t *testing.T) {
	publisher := &recordingPublisher{}
	svc, _ := setupService(t, publisher)

	_, err := svc.AdjustCustomer(context.Background(), "UNKNOWN-ID", domain.Adjustment{PointsDelta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, publisher.events)
}

func TestCustomerIDMatchedExactly(t *testing.T) {
	publisher := &recordingPublisher{}
	svc, _ := setupService(t, publisher)
	ctx := context.Background()

	_, err := svc.GetCustomer(ctx, " CUST-1001 ")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AdjustCustomer(ctx, "CUST-1001 ", domain.Adjustment{PointsDelta: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, publisher.events)

	unchanged, err := svc.GetCustomer(ctx, "CUST-1001")
	require.NoError(t, err)
	assert.Equal(t, int64(250), unchanged.Points)
}
