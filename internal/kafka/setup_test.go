package kafka

import (
	"testing"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdmin перехватывает CreateTopic, остальные методы не используются
type fakeAdmin struct {
	sarama.ClusterAdmin
	created map[string]*sarama.TopicDetail
	err     error
}

func (a *fakeAdmin) CreateTopic(topic string, detail *sarama.TopicDetail, validateOnly bool) error {
	if a.err != nil {
		return a.err
	}
	if a.created == nil {
		a.created = map[string]*sarama.TopicDetail{}
	}
	a.created[topic] = detail
	return nil
}

func TestEnsureTopicCreates(t *testing.T) {
	admin := &fakeAdmin{}

	require.NoError(t, EnsureTopic(admin, DefaultTopicSpec("customer.adjusted"), logger.NewNop()))
	require.Contains(t, admin.created, "customer.adjusted")
	assert.Equal(t, int32(3), admin.created["customer.adjusted"].NumPartitions)
	assert.Equal(t, int16(1), admin.created["customer.adjusted"].ReplicationFactor)
}

func TestEnsureTopicAlreadyExists(t *testing.T) {
	admin := &fakeAdmin{err: &sarama.TopicError{Err: sarama.ErrTopicAlreadyExists}}

	assert.NoError(t, EnsureTopic(admin, DefaultTopicSpec("customer.adjusted"), logger.NewNop()))
}

func TestEnsureTopicFailure(t *testing.T) {
	admin := &fakeAdmin{err: &sarama.TopicError{Err: sarama.ErrTopicAuthorizationFailed}}

	err := EnsureTopic(admin, DefaultTopicSpec("customer.adjusted"), logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer.adjusted")
}

func TestEnsureTopicEmptyName(t *testing.T) {
	assert.Error(t, EnsureTopic(&fakeAdmin{}, TopicSpec{}, logger.NewNop()))
}

func TestNewClusterAdminWithoutBrokers(t *testing.T) {
	_, err := NewClusterAdmin(NewConfig(nil), logger.NewNop())
	assert.Error(t, err)
}
