package producer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCustomer() domain.CustomerSummary {
	return domain.CustomerSummary{
		CustomerID: "CUST-1002",
		Points:     100,
		Balance:    domain.MustMoney("320.50"),
		RiskLevel:  "medium",
		Status:     "active",
		Segment:    "standard",
		UpdatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishCustomerAdjusted(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "customer.adjusted" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "CUST-1002" {
			return errors.New("unexpected key " + string(key))
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event CustomerAdjustedEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return err
		}
		if event.PointsDelta != -20 || event.Points != 100 || event.EventID == "" {
			return errors.New("unexpected event payload")
		}
		if !strings.Contains(string(raw), `"balance":"320.50"`) || !strings.Contains(string(raw), `"balance_delta":"0.00"`) {
			return errors.New("unexpected money format: " + string(raw))
		}
		return nil
	})

	p := NewCustomerProducer(mock, "customer.adjusted", logger.NewNop())
	err := p.PublishCustomerAdjusted(context.Background(), sampleCustomer(), domain.Adjustment{PointsDelta: -20})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishCustomerAdjustedBrokerError(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewCustomerProducer(mock, "customer.adjusted", logger.NewNop())
	err := p.PublishCustomerAdjusted(context.Background(), sampleCustomer(), domain.Adjustment{})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestPublishCustomerAdjustedCanceledContext(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewCustomerProducer(mock, "customer.adjusted", logger.NewNop())
	err := p.PublishCustomerAdjusted(ctx, sampleCustomer(), domain.Adjustment{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, p.Close())
}
