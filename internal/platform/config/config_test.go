package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerAddr   = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	moduleAddr  = "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
	airlineAddr = "0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb"
)

func TestFromEnv(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("CONTRACT_OWNER", ownerAddr)
		t.Setenv("APP_MODULE_ID", moduleAddr)

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, uint32(DefaultQuorumThresholdSize), cfg.Consortium.QuorumThresholdSize)
		assert.True(t, cfg.Consortium.FundingThreshold.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, cfg.Consortium.Owner, cfg.Consortium.FirstAirline)
		assert.Empty(t, cfg.Database.URL)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Equal(t, DefaultAuditTopic, cfg.Kafka.AuditTopic)
		assert.Equal(t, DefaultRateLimitPerMinute, cfg.RateLimit.Limit)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("CONTRACT_OWNER", ownerAddr)
		t.Setenv("APP_MODULE_ID", moduleAddr)
		t.Setenv("FIRST_AIRLINE", airlineAddr)
		t.Setenv("QUORUM_THRESHOLD_SIZE", "6")
		t.Setenv("FUNDING_THRESHOLD", "2.5")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, airlineAddr, cfg.Consortium.FirstAirline.String())
		assert.Equal(t, uint32(6), cfg.Consortium.QuorumThresholdSize)
		assert.Equal(t, "2.5", cfg.Consortium.FundingThreshold.String())
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
		assert.Zero(t, cfg.RateLimit.Limit)
	})

	t.Run("requires owner and module identities", func(t *testing.T) {
		t.Setenv("CONTRACT_OWNER", "")
		t.Setenv("APP_MODULE_ID", "not-an-address")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONTRACT_OWNER")
		assert.Contains(t, err.Error(), "APP_MODULE_ID")
	})

	t.Run("rejects non-positive parameters", func(t *testing.T) {
		t.Setenv("CONTRACT_OWNER", ownerAddr)
		t.Setenv("APP_MODULE_ID", moduleAddr)
		t.Setenv("QUORUM_THRESHOLD_SIZE", "0")
		t.Setenv("FUNDING_THRESHOLD", "-1")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "-5")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "QUORUM_THRESHOLD_SIZE")
		assert.Contains(t, err.Error(), "FUNDING_THRESHOLD")
		assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MINUTE")
	})
}
