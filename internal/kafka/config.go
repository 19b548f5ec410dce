package kafka

import (
	"time"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/IBM/sarama"
)

// Config конфигурация для Kafka
type Config struct {
	Brokers  []string
	ClientID string
	Producer ProducerConfig
}

// ProducerConfig конфигурация для продюсера
type ProducerConfig struct {
	MaxMessageBytes int
	Compression     sarama.CompressionCodec
	RequiredAcks    sarama.RequiredAcks
	RetryMax        int
	Timeout         time.Duration
}

// NewConfig создает новую конфигурацию Kafka
func NewConfig(brokers []string) *Config {
	return &Config{
		Brokers:  brokers,
		ClientID: "nice-proxy",
		Producer: ProducerConfig{
			MaxMessageBytes: 1000000,
			Compression:     sarama.CompressionSnappy,
			RequiredAcks:    sarama.WaitForAll,
			RetryMax:        3,
			Timeout:         5 * time.Second,
		},
	}
}

// NewSaramaConfig создает новую конфигурацию Sarama для синхронного продюсера
func NewSaramaConfig(cfg *Config, log *logger.Logger) *sarama.Config {
	saramaConfig := sarama.NewConfig()

	// Версия Kafka
	saramaConfig.Version = sarama.V3_3_0_0
	saramaConfig.ClientID = cfg.ClientID

	// Настройки продюсера
	saramaConfig.Producer.MaxMessageBytes = cfg.Producer.MaxMessageBytes
	saramaConfig.Producer.Compression = cfg.Producer.Compression
	saramaConfig.Producer.RequiredAcks = cfg.Producer.RequiredAcks
	saramaConfig.Producer.Retry.Max = cfg.Producer.RetryMax
	saramaConfig.Producer.Timeout = cfg.Producer.Timeout
	saramaConfig.Producer.Idempotent = false
	// SyncProducer требует обоих флагов
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true

	log.Debug("Kafka producer configured for brokers %v", cfg.Brokers)
	return saramaConfig
}

// NewSyncProducer создает синхронный продюсер по конфигурации
func NewSyncProducer(cfg *Config, log *logger.Logger) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg, log))
}
