package kafka

import (
	"errors"
	"fmt"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/IBM/sarama"
)

// TopicSpec описывает топик, который должен существовать до начала публикации
type TopicSpec struct {
	Name              string
	NumPartitions     int32
	ReplicationFactor int16
}

// DefaultTopicSpec возвращает настройки топика событий по умолчанию
func DefaultTopicSpec(name string) TopicSpec {
	return TopicSpec{
		Name:              name,
		NumPartitions:     3,
		ReplicationFactor: 1,
	}
}

// NewClusterAdmin создает административный клиент по конфигурации
func NewClusterAdmin(cfg *Config, log *logger.Logger) (sarama.ClusterAdmin, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}
	return sarama.NewClusterAdmin(cfg.Brokers, NewSaramaConfig(cfg, log))
}

// EnsureTopic создает топик, если его еще нет. Существующий топик не считается ошибкой.
func EnsureTopic(admin sarama.ClusterAdmin, spec TopicSpec, log *logger.Logger) error {
	if spec.Name == "" {
		return errors.New("kafka topic name is empty")
	}

	log.Infow("Ensuring Kafka topic exists", "topic", spec.Name, "partitions", spec.NumPartitions)

	err := admin.CreateTopic(spec.Name, &sarama.TopicDetail{
		NumPartitions:     spec.NumPartitions,
		ReplicationFactor: spec.ReplicationFactor,
	}, false)
	switch {
	case err == nil:
		log.Infow("Kafka topic created", "topic", spec.Name)
		return nil
	case topicExists(err):
		log.Debugw("Kafka topic already exists", "topic", spec.Name)
		return nil
	default:
		log.Errorw("Failed to create Kafka topic", "topic", spec.Name, "error", err)
		return fmt.Errorf("create topic %s: %w", spec.Name, err)
	}
}

func topicExists(err error) bool {
	if errors.Is(err, sarama.ErrTopicAlreadyExists) {
		return true
	}
	var topicErr *sarama.TopicError
	return errors.As(err, &topicErr) && topicErr.Err == sarama.ErrTopicAlreadyExists
}
