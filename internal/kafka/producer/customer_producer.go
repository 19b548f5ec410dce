package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// EventCustomerAdjusted тип события корректировки клиента
const EventCustomerAdjusted = "customer.adjusted"

// CustomerAdjustedEvent представляет событие корректировки клиента для Kafka
type CustomerAdjustedEvent struct {
	EventID      string          `json:"event_id"`
	CustomerID   string          `json:"customer_id"`
	PointsDelta  int64           `json:"points_delta"`
	BalanceDelta domain.Money    `json:"balance_delta"`
	Points       int64           `json:"points"`
	Balance      domain.Money    `json:"balance"`
	RiskLevel    string          `json:"risk_level"`
	Status       string          `json:"status"`
	Segment      string          `json:"segment"`
	Delinquent   bool            `json:"delinquent"`
	Timestamp    time.Time       `json:"timestamp"`
}

// CustomerProducer отправляет события клиентов в Kafka
type CustomerProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewCustomerProducer создает новый продюсер событий клиентов
func NewCustomerProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *CustomerProducer {
	return &CustomerProducer{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// PublishCustomerAdjusted публикует событие о корректировке клиента
func (p *CustomerProducer) PublishCustomerAdjusted(ctx context.Context, customer domain.CustomerSummary, adj domain.Adjustment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event := CustomerAdjustedEvent{
		EventID:      uuid.NewString(),
		CustomerID:   customer.CustomerID,
		PointsDelta:  adj.PointsDelta,
		BalanceDelta: domain.NewMoney(adj.BalanceDelta),
		Points:       customer.Points,
		Balance:      customer.Balance,
		RiskLevel:    customer.RiskLevel,
		Status:       customer.Status,
		Segment:      customer.Segment,
		Delinquent:   customer.Delinquent,
		Timestamp:    customer.UpdatedAt,
	}

	messageValue, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal customer event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(customer.CustomerID),
		Value: sarama.ByteEncoder(messageValue),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(EventCustomerAdjusted),
			},
		},
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish customer event: %w", err)
	}

	p.log.Info("Published customer event to topic %s: partition=%d offset=%d",
		p.topic, partition, offset)

	return nil
}

// Close закрывает продюсер
func (p *CustomerProducer) Close() error {
	return p.producer.Close()
}
