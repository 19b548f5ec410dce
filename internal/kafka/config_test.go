package kafka

import (
	"testing"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaramaConfigIsValidForSyncProducer(t *testing.T) {
	cfg := NewConfig([]string{"localhost:9092"})
	sc := NewSaramaConfig(cfg, logger.NewNop())

	require.NoError(t, sc.Validate())
	assert.True(t, sc.Producer.Return.Successes)
	assert.Equal(t, sarama.WaitForAll, sc.Producer.RequiredAcks)
	assert.Equal(t, "nice-proxy", sc.ClientID)
}
